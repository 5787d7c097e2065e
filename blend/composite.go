package blend

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/ipgraph/ipimage"
)

// ErrSizeMismatch is returned when base and top dimensions differ.
// This is the only hard failure in the engine: callers must resize layers
// before compositing.
var ErrSizeMismatch = errors.New("blend: base and top dimensions differ")

// Composite composites top over base with the given blend mode and top
// opacity. Both surfaces must have identical dimensions. The premultiplied
// flag selects the alpha convention of the input and output pixel values;
// the straight and premultiplied paths share the per-channel blend step
// but use distinct over formulas. Opacity is clamped to [0, 1].
//
// Neither input is mutated; the result is a new surface.
func Composite(base, top *ipimage.ImageData, mode Mode, opacity float64, premultiplied bool) (*ipimage.ImageData, error) {
	if base.Width != top.Width || base.Height != top.Height {
		return nil, fmt.Errorf("%w: base %dx%d, top %dx%d",
			ErrSizeMismatch, base.Width, base.Height, top.Width, top.Height)
	}
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}

	fn := mode.Func()
	out := ipimage.NewImageData(base.Width, base.Height)

	for i := 0; i < len(out.Pix); i += 4 {
		topA := float64(top.Pix[i+3]) / 255 * opacity
		baseA := float64(base.Pix[i+3]) / 255

		switch {
		case topA == 0:
			copy(out.Pix[i:i+4], base.Pix[i:i+4])
		case baseA == 0:
			copyTop(out.Pix[i:i+4], top.Pix[i:i+4], topA, opacity, premultiplied)
		case premultiplied:
			overPremultiplied(out.Pix[i:i+4], base.Pix[i:i+4], top.Pix[i:i+4],
				topA, baseA, opacity, mode, fn)
		default:
			overStraight(out.Pix[i:i+4], base.Pix[i:i+4], top.Pix[i:i+4],
				topA, baseA, fn)
		}
	}
	return out, nil
}

// copyTop writes the top pixel onto a fully transparent base. In the
// straight convention only alpha picks up the opacity; premultiplied
// channels are scaled with it.
func copyTop(out, top []uint8, topA, opacity float64, premultiplied bool) {
	if premultiplied {
		for c := 0; c < 3; c++ {
			out[c] = round8(float64(top[c]) * opacity)
		}
	} else {
		copy(out[:3], top[:3])
	}
	out[3] = round8(topA * 255)
}

// overStraight applies the straight-alpha over formula:
//
//	outRGB = (blend(base, top)*topA + baseRGB*baseA*(1-topA)) / outA
func overStraight(out, base, top []uint8, topA, baseA float64, fn Func) {
	outA := topA + baseA*(1-topA)
	if outA == 0 {
		out[0], out[1], out[2], out[3] = 0, 0, 0, 0
		return
	}
	for c := 0; c < 3; c++ {
		b := float64(base[c]) / 255
		t := float64(top[c]) / 255
		v := (fn(b, t)*topA + b*baseA*(1-topA)) / outA
		out[c] = round8(v * 255)
	}
	out[3] = round8(outA * 255)
}

// overPremultiplied applies the premultiplied over formula. For normal
// mode the channels composite directly; any other blend mode requires
// unpremultiplying both layers, blending, and re-premultiplying the top
// contribution.
func overPremultiplied(out, base, top []uint8, topA, baseA, opacity float64, mode Mode, fn Func) {
	outA := topA + baseA*(1-topA)
	if mode == ModeNormal {
		for c := 0; c < 3; c++ {
			v := float64(top[c])/255*opacity + float64(base[c])/255*(1-topA)
			out[c] = round8(v * 255)
		}
		out[3] = round8(outA * 255)
		return
	}
	for c := 0; c < 3; c++ {
		b := unpremul(base[c], base[3])
		t := unpremul(top[c], top[3])
		v := fn(b, t)*topA + float64(base[c])/255*(1-topA)
		out[c] = round8(v * 255)
	}
	out[3] = round8(outA * 255)
}

// unpremul recovers a straight channel value from a premultiplied byte.
func unpremul(c, a uint8) float64 {
	if a == 0 {
		return 0
	}
	return float64(c) / float64(a)
}

// round8 converts a [0, 255] float to a byte with rounding and clamping.
func round8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
