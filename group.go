package ipgraph

import "github.com/gogpu/ipgraph/ipimage"

// GroupNode is the shared base of node kinds that pick one of several
// inputs per frame. Concrete kinds supply the activeIndex hook; the
// returned index is clamped into the valid input range.
type GroupNode struct {
	BaseNode

	// activeIndex returns the input index to forward for the context.
	// A nil hook selects input 0.
	activeIndex func(ctx *EvalContext) int
}

// initGroup wires the group base. activeIndex may be nil.
func (g *GroupNode) initGroup(self Node, typeName string, activeIndex func(*EvalContext) int) {
	g.initNode(self, typeName)
	g.activeIndex = activeIndex
}

// Process forwards exactly one evaluated input. It returns nil when there
// are no inputs or the selected input evaluated to nil.
func (g *GroupNode) Process(ctx *EvalContext, inputs []*ipimage.Image) *ipimage.Image {
	if len(inputs) == 0 {
		return nil
	}
	idx := 0
	if g.activeIndex != nil {
		idx = g.activeIndex(ctx)
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(inputs)-1 {
		idx = len(inputs) - 1
	}
	return inputs[idx]
}
