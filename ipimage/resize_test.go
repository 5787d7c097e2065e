package ipimage

import "testing"

func TestResizeSameSizeReturnsSource(t *testing.T) {
	src := NewImageData(3, 3)
	if got := Resize(src, 3, 3); got != src {
		t.Error("matching dimensions must return the source unchanged")
	}
}

func TestResizePreservesUniformColor(t *testing.T) {
	src := NewImageData(3, 5)
	src.Fill(42, 84, 126, 255)

	for _, size := range []struct{ w, h int }{{1, 1}, {2, 2}, {7, 3}, {16, 16}} {
		got := Resize(src, size.w, size.h)
		if got.Width != size.w || got.Height != size.h {
			t.Fatalf("resized to %dx%d, want %dx%d", got.Width, got.Height, size.w, size.h)
		}
		for y := 0; y < size.h; y++ {
			for x := 0; x < size.w; x++ {
				r, g, b, a := got.At(x, y)
				if r != 42 || g != 84 || b != 126 || a != 255 {
					t.Fatalf("%dx%d pixel (%d,%d) = %v, want uniform [42 84 126 255]",
						size.w, size.h, x, y, []uint8{r, g, b, a})
				}
			}
		}
	}
}

func TestResizeUpscaleInterpolates(t *testing.T) {
	// Black and white halves must yield mid values between them.
	src := NewImageData(2, 1)
	src.Set(0, 0, 0, 0, 0, 255)
	src.Set(1, 0, 255, 255, 255, 255)

	got := Resize(src, 4, 1)
	r0, _, _, _ := got.At(0, 0)
	r1, _, _, _ := got.At(1, 0)
	r2, _, _, _ := got.At(2, 0)
	r3, _, _, _ := got.At(3, 0)

	if r0 != 0 || r3 != 255 {
		t.Errorf("edges %d..%d, want 0..255", r0, r3)
	}
	if !(r0 <= r1 && r1 <= r2 && r2 <= r3) {
		t.Errorf("interpolation not monotonic: %d %d %d %d", r0, r1, r2, r3)
	}
	if r1 == 0 || r2 == 255 {
		t.Errorf("interior samples not interpolated: %d %d", r1, r2)
	}
}

func TestResizeInterpolatesAlpha(t *testing.T) {
	src := NewImageData(2, 1)
	src.Set(0, 0, 255, 0, 0, 0)
	src.Set(1, 0, 255, 0, 0, 255)

	got := Resize(src, 5, 1)
	_, _, _, mid := got.At(2, 0)
	if mid == 0 || mid == 255 {
		t.Errorf("alpha channel not interpolated: %d", mid)
	}
}

func TestScaleFilters(t *testing.T) {
	src := NewImageData(4, 4)
	src.Fill(10, 200, 30, 255)

	for _, filter := range []Filter{FilterBilinear, FilterNearest, FilterCatmullRom} {
		t.Run(filter.String(), func(t *testing.T) {
			got := Scale(src, 8, 8, filter)
			if got.Width != 8 || got.Height != 8 {
				t.Fatalf("scaled to %dx%d, want 8x8", got.Width, got.Height)
			}
			r, g, b, a := got.At(4, 4)
			if r != 10 || g != 200 || b != 30 || a != 255 {
				t.Errorf("uniform color not preserved: %v", []uint8{r, g, b, a})
			}
		})
	}
}
