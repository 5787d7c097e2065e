package blend

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/ipgraph/ipimage"
)

// solid creates a w-by-h surface filled with one RGBA color.
func solid(w, h int, r, g, b, a uint8) *ipimage.ImageData {
	d := ipimage.NewImageData(w, h)
	d.Fill(r, g, b, a)
	return d
}

func TestCompositeZeroOpacityReturnsBase(t *testing.T) {
	base := solid(3, 3, 10, 20, 30, 200)
	top := solid(3, 3, 200, 100, 50, 255)

	for _, mode := range []Mode{ModeNormal, ModeAdd, ModeMinus, ModeMultiply,
		ModeScreen, ModeOverlay, ModeDifference, ModeExclusion} {
		t.Run(string(mode), func(t *testing.T) {
			got, err := Composite(base, top, mode, 0, false)
			if err != nil {
				t.Fatalf("Composite: %v", err)
			}
			if !bytes.Equal(got.Pix, base.Pix) {
				t.Errorf("opacity 0 must return the base exactly, got %v", got.Pix[:8])
			}
		})
	}
}

func TestCompositeSizeMismatch(t *testing.T) {
	base := solid(2, 2, 0, 0, 0, 255)
	top := solid(3, 2, 0, 0, 0, 255)

	if _, err := Composite(base, top, ModeNormal, 1, false); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Composite with mismatched sizes = %v, want ErrSizeMismatch", err)
	}
}

func TestCompositeMultiply(t *testing.T) {
	tests := []struct {
		name       string
		base, top  *ipimage.ImageData
		wantR      uint8
		wantAlmost bool // allow one count of rounding
	}{
		{"white top leaves base", solid(2, 2, 100, 100, 100, 255), solid(2, 2, 255, 255, 255, 255), 100, true},
		{"black top zeroes base", solid(2, 2, 100, 100, 100, 255), solid(2, 2, 0, 0, 0, 255), 0, false},
		{"gray on gray halves", solid(2, 2, 128, 128, 128, 255), solid(2, 2, 128, 128, 128, 255), 64, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Composite(tt.base, tt.top, ModeMultiply, 1, false)
			if err != nil {
				t.Fatalf("Composite: %v", err)
			}
			r := got.Pix[0]
			diff := int(r) - int(tt.wantR)
			if diff < 0 {
				diff = -diff
			}
			if (tt.wantAlmost && diff > 1) || (!tt.wantAlmost && diff != 0) {
				t.Errorf("multiply R = %d, want %d", r, tt.wantR)
			}
			if got.Pix[3] != 255 {
				t.Errorf("multiply A = %d, want 255", got.Pix[3])
			}
		})
	}
}

func TestCompositeScreenWithBlackLeavesBase(t *testing.T) {
	base := solid(2, 2, 77, 150, 200, 255)
	got, err := Composite(base, solid(2, 2, 0, 0, 0, 255), ModeScreen, 1, false)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if !bytes.Equal(got.Pix, base.Pix) {
		t.Errorf("screen with black changed base: %v", got.Pix[:4])
	}
}

func TestCompositeDifferenceOfSelfIsZero(t *testing.T) {
	img := solid(2, 2, 90, 140, 210, 255)
	got, err := Composite(img, img.Clone(), ModeDifference, 1, false)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	for i := 0; i < len(got.Pix); i += 4 {
		if got.Pix[i] != 0 || got.Pix[i+1] != 0 || got.Pix[i+2] != 0 {
			t.Fatalf("difference of identical images non-zero at %d: %v", i, got.Pix[i:i+3])
		}
	}
}

func TestCompositeAddClamps(t *testing.T) {
	got, err := Composite(solid(1, 1, 200, 200, 200, 255), solid(1, 1, 200, 200, 200, 255), ModeAdd, 1, false)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if got.Pix[0] != 255 {
		t.Errorf("add R = %d, want clamped 255", got.Pix[0])
	}
}

func TestCompositeConventionsDiffer(t *testing.T) {
	// Same raw pixel values interpreted under the two conventions compose
	// to different results when the top layer is semi-transparent.
	base := solid(1, 1, 200, 60, 40, 255)
	top := solid(1, 1, 100, 100, 100, 128)

	straight, err := Composite(base, top, ModeNormal, 1, false)
	if err != nil {
		t.Fatalf("straight: %v", err)
	}
	premul, err := Composite(base, top, ModeNormal, 1, true)
	if err != nil {
		t.Fatalf("premultiplied: %v", err)
	}
	if bytes.Equal(straight.Pix, premul.Pix) {
		t.Errorf("straight and premultiplied composites agree on %v, want different", straight.Pix)
	}
}

func TestCompositeOverTransparentBase(t *testing.T) {
	base := solid(1, 1, 0, 0, 0, 0)
	top := solid(1, 1, 240, 10, 10, 255)

	got, err := Composite(base, top, ModeNormal, 0.5, false)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	// Straight convention: channels copied, alpha picks up the opacity.
	if got.Pix[0] != 240 || got.Pix[3] != 128 {
		t.Errorf("got %v, want [240 10 10 128]", got.Pix[:4])
	}
}

func TestCompositeSemiTransparentOver(t *testing.T) {
	// 50% gray top over an opaque red base, straight alpha, normal mode.
	base := solid(1, 1, 255, 0, 0, 255)
	top := solid(1, 1, 0, 0, 255, 128)

	got, err := Composite(base, top, ModeNormal, 1, false)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	// topA = 128/255: outR = base*(1-topA) = 127, outB = top*topA = 128.
	want := []uint8{127, 0, 128, 255}
	if !bytes.Equal(got.Pix[:4], want) {
		t.Errorf("got %v, want %v", got.Pix[:4], want)
	}
}

func TestCompositeDoesNotMutateInputs(t *testing.T) {
	base := solid(2, 2, 10, 20, 30, 255)
	top := solid(2, 2, 200, 100, 50, 128)
	baseCopy := base.Clone()
	topCopy := top.Clone()

	if _, err := Composite(base, top, ModeScreen, 0.7, false); err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if !bytes.Equal(base.Pix, baseCopy.Pix) || !bytes.Equal(top.Pix, topCopy.Pix) {
		t.Error("Composite mutated an input surface")
	}
}
