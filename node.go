package ipgraph

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/gogpu/ipgraph/ipimage"
)

// Node is a vertex of the evaluation graph. Edges are mirrored: when A has
// B as an input, B has A as an output. Concrete node kinds embed BaseNode
// and override Process.
type Node interface {
	// ID returns the stable identifier assigned at construction.
	ID() string

	// TypeName returns the registry type tag of the node kind.
	TypeName() string

	// Name returns the user-visible node name.
	Name() string

	// SetName sets the user-visible node name.
	SetName(string)

	// Props returns the node's property container. Property writes mark
	// the node dirty.
	Props() *Properties

	// Inputs returns the ordered input edges.
	Inputs() []Node

	// Outputs returns the ordered output edges.
	Outputs() []Node

	// ConnectInput adds other as the last input and appends the
	// reciprocal output edge. Duplicate edges are ignored.
	ConnectInput(other Node)

	// DisconnectInput removes the edge to other, both sides.
	DisconnectInput(other Node)

	// DisconnectAllInputs removes every input edge.
	DisconnectAllInputs()

	// AddListener registers a callback fired when the node's edges change.
	AddListener(func(Node))

	// MarkDirty flags this node and, transitively, every output for
	// recomputation on the next Evaluate.
	MarkDirty()

	// Dirty reports whether the node needs recomputation.
	Dirty() bool

	// Evaluate produces the node's pixel buffer for the context's frame,
	// returning the cached buffer when the node is clean and the frame
	// matches. A nil result means "nothing to render", never an error.
	Evaluate(ctx *EvalContext) *ipimage.Image

	// Process computes the node's output from the already-evaluated input
	// buffers. It must be referentially transparent given its inputs,
	// properties and context, and must not mutate input buffers.
	Process(ctx *EvalContext, inputs []*ipimage.Image) *ipimage.Image

	// Dispose severs all edges, clears listeners and drops the cache.
	Dispose()

	json.Marshaler

	// base exposes the embedded BaseNode for graph-internal bookkeeping.
	// Satisfied by embedding BaseNode.
	base() *BaseNode
}

// BaseNode carries the shared graph state of every node kind: identity,
// properties, mirrored edges, the dirty flag and the per-frame cache.
type BaseNode struct {
	id        string
	typeName  string
	name      string
	props     *Properties
	inputs    []Node
	outputs   []Node
	listeners []func(Node)

	dirty       bool
	cached      *ipimage.Image
	cachedFrame int
	hasCache    bool

	// evaluating guards Evaluate against cyclic graphs. The surrounding
	// application is expected to build acyclic graphs; the guard turns an
	// accidental cycle into a nil result instead of unbounded recursion.
	evaluating bool

	self Node
}

// initNode wires the embedded BaseNode to its concrete node. Every
// constructor must call it before the node is used. Nodes start dirty.
func (b *BaseNode) initNode(self Node, typeName string) {
	b.id = uuid.NewString()
	b.typeName = typeName
	b.name = typeName
	b.self = self
	b.dirty = true
	b.props = NewProperties()
	b.props.onChange = func(string) { b.MarkDirty() }
}

func (b *BaseNode) base() *BaseNode { return b }

// ID returns the stable identifier assigned at construction.
func (b *BaseNode) ID() string { return b.id }

// TypeName returns the registry type tag of the node kind.
func (b *BaseNode) TypeName() string { return b.typeName }

// Name returns the user-visible node name.
func (b *BaseNode) Name() string { return b.name }

// SetName sets the user-visible node name.
func (b *BaseNode) SetName(name string) { b.name = name }

// Props returns the node's property container.
func (b *BaseNode) Props() *Properties { return b.props }

// Inputs returns a copy of the ordered input edges.
func (b *BaseNode) Inputs() []Node { return append([]Node(nil), b.inputs...) }

// Outputs returns a copy of the ordered output edges.
func (b *BaseNode) Outputs() []Node { return append([]Node(nil), b.outputs...) }

// AddListener registers a callback fired when the node's edges change.
func (b *BaseNode) AddListener(fn func(Node)) {
	b.listeners = append(b.listeners, fn)
}

func (b *BaseNode) notify() {
	for _, fn := range b.listeners {
		fn(b.self)
	}
}

// ConnectInput adds other as the last input and appends the reciprocal
// output edge on other. The new edge is deduplicated, the node is marked
// dirty, and listeners on both sides are notified.
func (b *BaseNode) ConnectInput(other Node) {
	if other == nil {
		return
	}
	ob := other.base()
	for _, in := range b.inputs {
		if in.base() == ob {
			return
		}
	}
	b.inputs = append(b.inputs, other)
	ob.outputs = append(ob.outputs, b.self)
	b.MarkDirty()
	b.notify()
	ob.notify()
}

// DisconnectInput removes the edge to other on both sides. Unknown edges
// are a no-op.
func (b *BaseNode) DisconnectInput(other Node) {
	if other == nil {
		return
	}
	ob := other.base()
	found := false
	for i, in := range b.inputs {
		if in.base() == ob {
			b.inputs = append(b.inputs[:i], b.inputs[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return
	}
	for i, out := range ob.outputs {
		if out.base() == b {
			ob.outputs = append(ob.outputs[:i], ob.outputs[i+1:]...)
			break
		}
	}
	b.MarkDirty()
	b.notify()
	ob.notify()
}

// DisconnectAllInputs removes every input edge.
func (b *BaseNode) DisconnectAllInputs() {
	for _, in := range append([]Node(nil), b.inputs...) {
		b.DisconnectInput(in)
	}
}

// MarkDirty flags this node and, transitively, every current output.
// The traversal carries a visited set so a cyclic graph terminates.
func (b *BaseNode) MarkDirty() {
	b.markDirty(make(map[*BaseNode]struct{}))
}

func (b *BaseNode) markDirty(seen map[*BaseNode]struct{}) {
	if _, ok := seen[b]; ok {
		return
	}
	seen[b] = struct{}{}
	b.dirty = true
	for _, out := range b.outputs {
		out.base().markDirty(seen)
	}
}

// Dirty reports whether the node needs recomputation.
func (b *BaseNode) Dirty() bool { return b.dirty }

// Evaluate produces the node's buffer for the context's frame.
//
// When the node is clean and the cached frame equals ctx.Frame, the cached
// buffer is returned as-is, nil results included. Otherwise every input is
// evaluated depth-first, the buffer list is handed to Process, and the
// result is cached against the frame. The cache is keyed only by frame
// number: Width, Height and Quality changes alone do not invalidate it.
func (b *BaseNode) Evaluate(ctx *EvalContext) *ipimage.Image {
	if !b.dirty && b.hasCache && b.cachedFrame == ctx.Frame {
		Logger().Debug("evaluate cache hit", "node", b.name, "frame", ctx.Frame)
		return b.cached
	}
	if b.evaluating {
		Logger().Warn("cyclic evaluation aborted", "node", b.name, "frame", ctx.Frame)
		return nil
	}
	b.evaluating = true
	defer func() { b.evaluating = false }()

	results := make([]*ipimage.Image, len(b.inputs))
	for i, in := range b.inputs {
		results[i] = in.Evaluate(ctx)
	}
	out := b.self.Process(ctx, results)
	b.cached = out
	b.cachedFrame = ctx.Frame
	b.hasCache = true
	b.dirty = false
	return out
}

// Process is the abstract hook; BaseNode has no computation of its own and
// returns nil. Concrete node kinds override it.
func (b *BaseNode) Process(*EvalContext, []*ipimage.Image) *ipimage.Image {
	return nil
}

// Dispose severs all edges on both sides, clears listeners and drops the
// cache. The node must not be evaluated afterwards.
func (b *BaseNode) Dispose() {
	b.DisconnectAllInputs()
	for _, out := range append([]Node(nil), b.outputs...) {
		out.DisconnectInput(b.self)
	}
	b.listeners = nil
	b.cached = nil
	b.hasCache = false
}

// MarshalJSON emits the minimal serialization contract:
// {type, id, name, inputs: [ids], properties}.
func (b *BaseNode) MarshalJSON() ([]byte, error) {
	ids := make([]string, len(b.inputs))
	for i, in := range b.inputs {
		ids[i] = in.ID()
	}
	return json.Marshal(struct {
		Type       string         `json:"type"`
		ID         string         `json:"id"`
		Name       string         `json:"name"`
		Inputs     []string       `json:"inputs"`
		Properties map[string]any `json:"properties"`
	}{
		Type:       b.typeName,
		ID:         b.id,
		Name:       b.name,
		Inputs:     ids,
		Properties: b.props.Map(),
	})
}
