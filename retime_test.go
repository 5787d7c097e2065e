package ipgraph

import "testing"

func TestGetRetimedFrame(t *testing.T) {
	tests := []struct {
		name    string
		scale   float64
		offset  float64
		reverse bool
		frame   int
		want    int
	}{
		{"identity", 1, 0, false, 10, 10},
		{"double speed", 2, 0, false, 5, 10},
		{"half speed rounds", 0.5, 0, false, 5, 3},
		{"offset", 1, 10, false, 5, 15},
		{"scale and offset", 2, 3, false, 4, 11},
		{"floored at one", 1, -100, false, 5, 1},
		{"zero frame floored", 0, 0, false, 50, 1},
		{"reverse negates", 1, 0, true, 7, -7},
		{"reverse after floor", 1, -100, true, 5, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewRetimeGroupNode()
			n.SetScale(tt.scale)
			n.SetOffset(tt.offset)
			n.SetReverse(tt.reverse)
			if got := n.GetRetimedFrame(tt.frame); got != tt.want {
				t.Errorf("GetRetimedFrame(%d) = %d, want %d", tt.frame, got, tt.want)
			}
		})
	}
}

func TestRetimePassesThrough(t *testing.T) {
	n := NewRetimeGroupNode()
	src := newSolidNode(2, 2, 70, 80, 90, 255)
	n.ConnectInput(src)
	n.SetScale(3)

	got := n.Evaluate(&EvalContext{Frame: 1})
	if got == nil {
		t.Fatal("Evaluate returned nil")
	}
	if px := got.GetPixel(0, 0); px[0] != 70 {
		t.Errorf("pixel = %v, want the input unchanged", px)
	}
}

func TestRetimeNoInputs(t *testing.T) {
	n := NewRetimeGroupNode()
	if got := n.Evaluate(&EvalContext{Frame: 1}); got != nil {
		t.Errorf("Evaluate = %v on empty retime, want nil", got)
	}
}
