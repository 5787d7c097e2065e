// Package ipimage provides the pixel buffers consumed and produced by the
// evaluation graph.
//
// An Image is an interleaved buffer with 1-4 channels and one of three
// element types (uint8, uint16, float32). ImageData is the 8-bit RGBA
// working surface used by the compositing engine; Image offers a lossy
// bridge to and from it.
package ipimage

import (
	"errors"
	"fmt"
	"math"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("ipimage: invalid dimensions")

	// ErrInvalidChannels is returned when the channel count is outside 1-4.
	ErrInvalidChannels = errors.New("ipimage: channel count must be 1-4")
)

// ElementType identifies the storage type of a single channel sample.
type ElementType uint8

const (
	// Uint8 stores each sample as one byte in [0, 255].
	Uint8 ElementType = iota

	// Uint16 stores each sample as two bytes in [0, 65535].
	Uint16

	// Float32 stores each sample as a 32-bit float, nominally in [0, 1].
	Float32
)

// String returns a string representation of the element type.
func (t ElementType) String() string {
	switch t {
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Float32:
		return "float32"
	default:
		return "unknown"
	}
}

// NormScale returns the divisor that maps raw samples of this type into
// the normalized [0, 1] range. Float32 and any unrecognized type use 1.0,
// so unknown types pass through unscaled.
func (t ElementType) NormScale() float64 {
	switch t {
	case Uint8:
		return 255
	case Uint16:
		return 65535
	default:
		return 1.0
	}
}

// Image is an interleaved pixel buffer.
//
// Exactly one of the three data slices is non-nil, selected by the element
// type. Images returned from graph evaluation are treated as immutable.
type Image struct {
	width    int
	height   int
	channels int
	elem     ElementType

	u8  []uint8
	u16 []uint16
	f32 []float32
}

// NewImage creates an empty image with the given dimensions, channel count
// and element type. All samples start at zero.
func NewImage(width, height, channels int, elem ElementType) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if channels < 1 || channels > 4 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChannels, channels)
	}

	img := &Image{
		width:    width,
		height:   height,
		channels: channels,
		elem:     elem,
	}
	n := width * height * channels
	switch elem {
	case Uint8:
		img.u8 = make([]uint8, n)
	case Uint16:
		img.u16 = make([]uint16, n)
	default:
		// Float32 and unrecognized types store float samples.
		img.f32 = make([]float32, n)
	}
	return img, nil
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.height }

// Channels returns the number of interleaved channels.
func (m *Image) Channels() int { return m.channels }

// Type returns the element type of the image samples.
func (m *Image) Type() ElementType { return m.elem }

// Data8 returns the raw sample slice for Uint8 images, nil otherwise.
func (m *Image) Data8() []uint8 { return m.u8 }

// Data16 returns the raw sample slice for Uint16 images, nil otherwise.
func (m *Image) Data16() []uint16 { return m.u16 }

// DataF32 returns the raw sample slice for Float32 images, nil otherwise.
func (m *Image) DataF32() []float32 { return m.f32 }

// Sample returns the raw value of a single channel sample at the given
// flattened index.
func (m *Image) Sample(i int) float64 {
	switch {
	case m.u8 != nil:
		return float64(m.u8[i])
	case m.u16 != nil:
		return float64(m.u16[i])
	default:
		return float64(m.f32[i])
	}
}

// SetSample stores a raw value at the given flattened index, clamped to the
// range of the element type.
func (m *Image) SetSample(i int, v float64) {
	switch {
	case m.u8 != nil:
		m.u8[i] = uint8(clampRange(math.Round(v), 255))
	case m.u16 != nil:
		m.u16[i] = uint16(clampRange(math.Round(v), 65535))
	default:
		m.f32[i] = float32(v)
	}
}

// GetPixel returns the raw channel values at (x, y), or nil when the
// coordinates are out of bounds.
func (m *Image) GetPixel(x, y int) []float64 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return nil
	}
	out := make([]float64, m.channels)
	base := (y*m.width + x) * m.channels
	for c := 0; c < m.channels; c++ {
		out[c] = m.Sample(base + c)
	}
	return out
}

// SetPixel stores raw channel values at (x, y). Out-of-bounds coordinates
// and surplus values are ignored; values are clamped to the element range.
func (m *Image) SetPixel(x, y int, vals ...float64) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	base := (y*m.width + x) * m.channels
	for c := 0; c < m.channels && c < len(vals); c++ {
		m.SetSample(base+c, vals[c])
	}
}

// DeepClone returns an independent copy of the image and its samples.
func (m *Image) DeepClone() *Image {
	out := &Image{
		width:    m.width,
		height:   m.height,
		channels: m.channels,
		elem:     m.elem,
	}
	if m.u8 != nil {
		out.u8 = append([]uint8(nil), m.u8...)
	}
	if m.u16 != nil {
		out.u16 = append([]uint16(nil), m.u16...)
	}
	if m.f32 != nil {
		out.f32 = append([]float32(nil), m.f32...)
	}
	return out
}

// ToImageData converts the image to 8-bit RGBA. The conversion is lossy for
// Uint16 and Float32 images. Grayscale channels are replicated across RGB;
// a second channel, when present, is treated as alpha.
func (m *Image) ToImageData() *ImageData {
	d := NewImageData(m.width, m.height)
	scale := m.elem.NormScale()
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			base := (y*m.width + x) * m.channels
			var r, g, b, a float64
			switch m.channels {
			case 1:
				v := m.Sample(base) / scale
				r, g, b, a = v, v, v, 1
			case 2:
				v := m.Sample(base) / scale
				r, g, b = v, v, v
				a = m.Sample(base+1) / scale
			case 3:
				r = m.Sample(base) / scale
				g = m.Sample(base+1) / scale
				b = m.Sample(base+2) / scale
				a = 1
			default:
				r = m.Sample(base) / scale
				g = m.Sample(base+1) / scale
				b = m.Sample(base+2) / scale
				a = m.Sample(base+3) / scale
			}
			i := (y*m.width + x) * 4
			d.Pix[i+0] = quantize8(r)
			d.Pix[i+1] = quantize8(g)
			d.Pix[i+2] = quantize8(b)
			d.Pix[i+3] = quantize8(a)
		}
	}
	return d
}

// FromImageData creates a 4-channel Uint8 image from 8-bit RGBA data.
func FromImageData(d *ImageData) *Image {
	img, _ := NewImage(d.Width, d.Height, 4, Uint8)
	copy(img.u8, d.Pix)
	return img
}

// quantize8 maps a normalized [0, 1] value to a byte with rounding.
func quantize8(v float64) uint8 {
	return uint8(clampRange(math.Round(v*255), 255))
}

func clampRange(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
