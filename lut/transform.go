// Package lut implements the parametric color transform and its cached
// 3D lookup-table form.
//
// Apply is the canonical per-pixel transform and the reference for every
// other path. Generate bakes the transform into a cubic lattice that
// Lookup samples with trilinear interpolation, amortizing the per-pixel
// cost across frames.
package lut

import "math"

// Rec.709 luma weights used by the saturation blend.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// tempScale converts the temperature and tint parameters into channel
// offsets. Calibration choice: one full unit of temperature shifts red up
// and blue down by 0.1.
const tempScale = 0.1

// Params holds the seven color-transform parameters. The zero-effect
// values are exposure 0, contrast 1, saturation 1, brightness 0, gamma 1,
// temperature 0, tint 0.
type Params struct {
	Exposure    float64 `yaml:"exposure"`
	Contrast    float64 `yaml:"contrast"`
	Saturation  float64 `yaml:"saturation"`
	Brightness  float64 `yaml:"brightness"`
	Gamma       float64 `yaml:"gamma"`
	Temperature float64 `yaml:"temperature"`
	Tint        float64 `yaml:"tint"`
}

// Identity returns the parameter set that leaves colors unchanged.
func Identity() Params {
	return Params{
		Exposure:    0,
		Contrast:    1,
		Saturation:  1,
		Brightness:  0,
		Gamma:       1,
		Temperature: 0,
		Tint:        0,
	}
}

// IsIdentity reports whether every parameter equals its identity value.
func (p Params) IsIdentity() bool {
	return p == Identity()
}

// Apply transforms one RGB triple. Inputs are normalized [0, 1] values;
// outputs are clamped to [0, 1]. The operation order is exposure,
// brightness, contrast about mid-gray, saturation toward luma, gamma,
// then the temperature/tint shifts.
func Apply(r, g, b float64, p Params) (float64, float64, float64) {
	gain := math.Pow(2, p.Exposure)
	r = r*gain + p.Brightness
	g = g*gain + p.Brightness
	b = b*gain + p.Brightness

	r = (r-0.5)*p.Contrast + 0.5
	g = (g-0.5)*p.Contrast + 0.5
	b = (b-0.5)*p.Contrast + 0.5

	luma := lumaR*r + lumaG*g + lumaB*b
	r = r + (luma-r)*(1-p.Saturation)
	g = g + (luma-g)*(1-p.Saturation)
	b = b + (luma-b)*(1-p.Saturation)

	inv := 1.0
	if p.Gamma != 0 {
		inv = 1 / p.Gamma
	}
	r = math.Pow(clamp01(r), inv)
	g = math.Pow(clamp01(g), inv)
	b = math.Pow(clamp01(b), inv)

	r += p.Temperature * tempScale
	b -= p.Temperature * tempScale
	g += p.Tint * tempScale

	return clamp01(r), clamp01(g), clamp01(b)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
