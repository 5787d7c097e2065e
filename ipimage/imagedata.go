package ipimage

import "image"

// ImageData is an 8-bit RGBA surface, four bytes per pixel in row-major
// order. It is the working format of the compositing engine; the alpha
// convention, straight or premultiplied, is chosen by the compositing call.
type ImageData struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewImageData creates a fully transparent surface of the given size.
func NewImageData(width, height int) *ImageData {
	return &ImageData{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// Clone returns an independent copy of the surface.
func (d *ImageData) Clone() *ImageData {
	out := &ImageData{Width: d.Width, Height: d.Height}
	out.Pix = append([]uint8(nil), d.Pix...)
	return out
}

// At returns the RGBA bytes of the pixel at (x, y). Out-of-bounds
// coordinates return transparent black.
func (d *ImageData) At(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return 0, 0, 0, 0
	}
	i := (y*d.Width + x) * 4
	return d.Pix[i], d.Pix[i+1], d.Pix[i+2], d.Pix[i+3]
}

// Set stores the RGBA bytes of the pixel at (x, y). Out-of-bounds
// coordinates are ignored.
func (d *ImageData) Set(x, y int, r, g, b, a uint8) {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return
	}
	i := (y*d.Width + x) * 4
	d.Pix[i+0] = r
	d.Pix[i+1] = g
	d.Pix[i+2] = b
	d.Pix[i+3] = a
}

// Fill sets every pixel of the surface to the given color.
func (d *ImageData) Fill(r, g, b, a uint8) {
	for i := 0; i < len(d.Pix); i += 4 {
		d.Pix[i+0] = r
		d.Pix[i+1] = g
		d.Pix[i+2] = b
		d.Pix[i+3] = a
	}
}

// ToNRGBA wraps the surface as a stdlib image without copying pixels.
// Mutating the returned image mutates the surface.
func (d *ImageData) ToNRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    d.Pix,
		Stride: d.Width * 4,
		Rect:   image.Rect(0, 0, d.Width, d.Height),
	}
}

// FromNRGBA copies a stdlib image into a new surface.
func FromNRGBA(img *image.NRGBA) *ImageData {
	b := img.Bounds()
	d := NewImageData(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		copy(d.Pix[y*d.Width*4:], src)
	}
	return d
}
