package ipgraph

import "github.com/gogpu/ipgraph/ipimage"

// TypeFolder is the registry type tag of FolderNode.
const TypeFolder = "Folder"

func init() {
	RegisterNodeType(TypeFolder, func() Node { return NewFolderNode() })
}

// FolderNode groups nodes for organization and passes its first input
// through unchanged.
type FolderNode struct {
	BaseNode
}

// NewFolderNode creates an empty folder.
func NewFolderNode() *FolderNode {
	n := &FolderNode{}
	n.initNode(n, TypeFolder)
	return n
}

// Process passes the first input through.
func (n *FolderNode) Process(_ *EvalContext, inputs []*ipimage.Image) *ipimage.Image {
	if len(inputs) == 0 {
		return nil
	}
	return inputs[0]
}
