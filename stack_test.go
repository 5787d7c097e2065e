package ipgraph

import (
	"testing"

	"github.com/gogpu/ipgraph/blend"
)

func stackPixel(t *testing.T, n *StackGroupNode, frame int) []float64 {
	t.Helper()
	got := n.Evaluate(&EvalContext{Frame: frame})
	if got == nil {
		t.Fatal("Evaluate returned nil")
	}
	return got.GetPixel(0, 0)
}

func TestStackNoInputsReturnsNil(t *testing.T) {
	st := NewStackGroupNode()
	if got := st.Evaluate(&EvalContext{Frame: 1}); got != nil {
		t.Errorf("empty stack = %v, want nil", got)
	}
}

func TestStackSingleInputPassesThrough(t *testing.T) {
	st := NewStackGroupNode()
	src := newSolidNode(2, 2, 10, 20, 30, 255)
	st.ConnectInput(src)

	got := st.Evaluate(&EvalContext{Frame: 1})
	want := src.Evaluate(&EvalContext{Frame: 1})
	if got != want {
		t.Error("single valid input must pass through by reference")
	}
}

func TestStackNilInputsFiltered(t *testing.T) {
	st := NewStackGroupNode()
	st.ConnectInput(newNilNode())
	src := newSolidNode(2, 2, 10, 20, 30, 255)
	st.ConnectInput(src)
	st.ConnectInput(newNilNode())

	px := stackPixel(t, st, 1)
	if px[0] != 10 || px[1] != 20 || px[2] != 30 {
		t.Errorf("pixel = %v, want the sole non-nil input", px)
	}
}

func TestStackTopmostOpaqueWins(t *testing.T) {
	st := NewStackGroupNode()
	st.ConnectInput(newSolidNode(2, 2, 255, 0, 0, 255))
	st.ConnectInput(newSolidNode(2, 2, 0, 255, 0, 255))

	px := stackPixel(t, st, 1)
	if px[0] != 0 || px[1] != 255 {
		t.Errorf("pixel = %v, want the top opaque layer", px)
	}
}

func TestStackHiddenLayerSkipped(t *testing.T) {
	st := NewStackGroupNode()
	st.ConnectInput(newSolidNode(2, 2, 255, 0, 0, 255))
	st.ConnectInput(newSolidNode(2, 2, 0, 255, 0, 255))
	st.SetLayerSettings(1, LayerSettings{Mode: blend.ModeNormal, Opacity: 1, Visible: false})

	px := stackPixel(t, st, 1)
	if px[0] != 255 || px[1] != 0 {
		t.Errorf("pixel = %v, want the base layer", px)
	}
}

func TestStackLayerModeOverridesGlobal(t *testing.T) {
	st := NewStackGroupNode()
	st.ConnectInput(newSolidNode(2, 2, 128, 128, 128, 255))
	st.ConnectInput(newSolidNode(2, 2, 128, 128, 128, 255))
	st.SetLayerSettings(1, LayerSettings{Mode: blend.ModeMultiply, Opacity: 1, Visible: true})

	px := stackPixel(t, st, 1)
	// 128/255 * 128/255 * 255 rounds to 64.
	if px[0] != 64 {
		t.Errorf("multiply pixel = %v, want 64", px)
	}
}

func TestStackGlobalCompositeType(t *testing.T) {
	st := NewStackGroupNode()
	st.ConnectInput(newSolidNode(2, 2, 128, 128, 128, 255))
	st.ConnectInput(newSolidNode(2, 2, 128, 128, 128, 255))
	st.SetCompositeType("add")

	px := stackPixel(t, st, 1)
	if px[0] != 255 {
		t.Errorf("add pixel = %v, want clamped 255", px)
	}
}

func TestStackUnknownCompositeTypeFallsBack(t *testing.T) {
	st := NewStackGroupNode()
	st.ConnectInput(newSolidNode(2, 2, 255, 0, 0, 255))
	st.ConnectInput(newSolidNode(2, 2, 0, 255, 0, 255))
	st.SetCompositeType("dissolve")

	px := stackPixel(t, st, 1)
	if px[1] != 255 {
		t.Errorf("dissolve pixel = %v, want normal-mode top layer", px)
	}
}

func TestStackLayerOpacity(t *testing.T) {
	st := NewStackGroupNode()
	st.ConnectInput(newSolidNode(2, 2, 0, 0, 0, 255))
	st.ConnectInput(newSolidNode(2, 2, 255, 255, 255, 255))
	st.SetLayerSettings(1, LayerSettings{Mode: blend.ModeNormal, Opacity: 0.5, Visible: true})

	px := stackPixel(t, st, 1)
	if px[0] < 126 || px[0] > 129 {
		t.Errorf("half-opacity white over black = %v, want near 128", px)
	}
}

func TestStackResizesLayersToBase(t *testing.T) {
	st := NewStackGroupNode()
	st.ConnectInput(newSolidNode(4, 4, 255, 0, 0, 255))
	st.ConnectInput(newSolidNode(2, 2, 0, 255, 0, 255))

	got := st.Evaluate(&EvalContext{Frame: 1})
	if got.Width() != 4 || got.Height() != 4 {
		t.Fatalf("output %dx%d, want base 4x4", got.Width(), got.Height())
	}
	if px := got.GetPixel(3, 3); px[1] != 255 {
		t.Errorf("corner pixel = %v, want upscaled top layer", px)
	}
}

func TestStackWipeSplitsAtPosition(t *testing.T) {
	st := NewStackGroupNode()
	st.ConnectInput(newSolidNode(10, 1, 255, 0, 0, 255))
	st.ConnectInput(newSolidNode(10, 1, 0, 255, 0, 255))
	st.SetMode(StackModeWipe)

	tests := []struct {
		wipeX    float64
		redCols  int
		name     string
	}{
		{0.5, 5, "center"},
		{0, 0, "full right"},
		{1, 10, "full left"},
	}
	for _, tt := range tests {
		st.SetWipePosition(tt.wipeX, 0.5)
		got := st.Evaluate(&EvalContext{Frame: 1})
		for x := 0; x < 10; x++ {
			px := got.GetPixel(x, 0)
			wantRed := x < tt.redCols
			if wantRed && px[0] != 255 {
				t.Errorf("%s: column %d = %v, want red", tt.name, x, px)
			}
			if !wantRed && px[1] != 255 {
				t.Errorf("%s: column %d = %v, want green", tt.name, x, px)
			}
		}
	}
}

func TestStackWipePositionClamped(t *testing.T) {
	st := NewStackGroupNode()
	st.SetWipePosition(-1, 2)
	x, y := st.WipePosition()
	if x != 0 || y != 1 {
		t.Errorf("WipePosition() = (%v, %v), want (0, 1)", x, y)
	}
}

func TestStackLayerSettingsDefaults(t *testing.T) {
	st := NewStackGroupNode()
	s := st.GetLayerSettings(3)
	if s.Mode != blend.ModeNormal || s.Opacity != 1 || !s.Visible {
		t.Errorf("defaults = %+v, want normal/1/visible", s)
	}
}

func TestStackLayerSettingsClampOpacity(t *testing.T) {
	st := NewStackGroupNode()
	st.SetLayerSettings(0, LayerSettings{Mode: blend.ModeNormal, Opacity: 3, Visible: true})
	if got := st.GetLayerSettings(0).Opacity; got != 1 {
		t.Errorf("Opacity = %v after over-range set, want 1", got)
	}
}

func TestStackStencilBoxStoredOrdered(t *testing.T) {
	st := NewStackGroupNode()
	st.SetStencilBox(0, StencilBox{XMin: 0.9, XMax: 0.1, YMin: -1, YMax: 2})

	box, ok := st.GetStencilBox(0)
	if !ok {
		t.Fatal("stencil box not stored")
	}
	want := StencilBox{XMin: 0.1, XMax: 0.9, YMin: 0, YMax: 1}
	if box != want {
		t.Errorf("box = %+v, want %+v", box, want)
	}
	if _, ok := st.GetStencilBox(1); ok {
		t.Error("unset layer reported a stencil box")
	}
}
