package ipgraph

import (
	"math"

	"github.com/gogpu/ipgraph/ipimage"
)

// TypeRetime is the registry type tag of RetimeGroupNode.
const TypeRetime = "Retime"

func init() {
	RegisterNodeType(TypeRetime, func() Node { return NewRetimeGroupNode() })
}

// RetimeGroupNode remaps frame numbers linearly: scaled, offset and
// optionally reversed. Its pixel path is a structural pass-through of the
// first input; callers consult GetRetimedFrame when driving sources.
//
// Reverse is a plain negation of the remapped frame. Duration-aware
// reversal around a clip length is not implemented; callers that need it
// must offset the result against their clip length themselves.
type RetimeGroupNode struct {
	GroupNode
}

// NewRetimeGroupNode creates a retime with scale 1 and offset 0.
func NewRetimeGroupNode() *RetimeGroupNode {
	n := &RetimeGroupNode{}
	n.initGroup(n, TypeRetime, nil)
	n.props.Add("scale", 1.0)
	n.props.Add("offset", 0.0)
	n.props.Add("reverse", false)
	return n
}

// SetScale sets the frame-rate multiplier.
func (n *RetimeGroupNode) SetScale(scale float64) { n.props.Set("scale", scale) }

// SetOffset sets the frame offset added after scaling.
func (n *RetimeGroupNode) SetOffset(offset float64) { n.props.Set("offset", offset) }

// SetReverse toggles reverse playback.
func (n *RetimeGroupNode) SetReverse(reverse bool) { n.props.Set("reverse", reverse) }

// GetRetimedFrame maps a global frame through round(frame*scale + offset),
// floored at 1. With reverse set, the result is negated.
func (n *RetimeGroupNode) GetRetimedFrame(frame int) int {
	f := int(math.Round(float64(frame)*n.props.Float("scale") + n.props.Float("offset")))
	if f < 1 {
		f = 1
	}
	if n.props.Bool("reverse") {
		return -f
	}
	return f
}

// Process passes the first input through.
func (n *RetimeGroupNode) Process(_ *EvalContext, inputs []*ipimage.Image) *ipimage.Image {
	if len(inputs) == 0 {
		return nil
	}
	return inputs[0]
}
