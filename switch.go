package ipgraph

// TypeSwitch is the registry type tag of SwitchGroupNode.
const TypeSwitch = "Switch"

func init() {
	RegisterNodeType(TypeSwitch, func() Node { return NewSwitchGroupNode() })
}

// SwitchGroupNode forwards one input selected manually through the
// outputIndex property.
type SwitchGroupNode struct {
	GroupNode
}

// NewSwitchGroupNode creates a switch with input 0 selected.
func NewSwitchGroupNode() *SwitchGroupNode {
	n := &SwitchGroupNode{}
	n.initGroup(n, TypeSwitch, n.activeInput)
	n.props.Add("outputIndex", 0)
	return n
}

func (n *SwitchGroupNode) activeInput(*EvalContext) int {
	return n.props.Int("outputIndex")
}

// ActiveInput returns the currently selected input index.
func (n *SwitchGroupNode) ActiveInput() int {
	return n.props.Int("outputIndex")
}

// SetActiveInput selects an input, clamped into the valid range.
func (n *SwitchGroupNode) SetActiveInput(idx int) {
	if idx < 0 {
		idx = 0
	}
	if max := len(n.inputs) - 1; max >= 0 && idx > max {
		idx = max
	}
	n.props.Set("outputIndex", idx)
}

// Toggle advances the selection by one with wraparound. A switch without
// inputs is left untouched.
func (n *SwitchGroupNode) Toggle() {
	count := len(n.inputs)
	if count == 0 {
		return
	}
	n.props.Set("outputIndex", (n.props.Int("outputIndex")+1)%count)
}
