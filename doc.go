// Package ipgraph provides the image-processing core of an interactive
// media viewer: a directed evaluation graph of processing nodes whose
// output is a pixel buffer for a requested frame.
//
// # Overview
//
// ipgraph evaluates a graph of nodes per frame. A caller requests
// Evaluate on an output node; evaluation recurses into inputs depth-first,
// each producing a pixel buffer or nil, group nodes select or merge them,
// and the result is cached against the frame number until a property or
// edge change marks the node dirty.
//
// # Quick Start
//
//	import "github.com/gogpu/ipgraph"
//
//	src := newSourceNode()        // any node producing images
//	stack := ipgraph.NewStackGroupNode()
//	stack.ConnectInput(src)
//
//	img := stack.Evaluate(&ipgraph.EvalContext{Frame: 1})
//
// # Architecture
//
// The library is organized into:
//   - ipgraph: the node graph (Node, group-node family, CacheLUTNode)
//   - ipimage: interleaved pixel buffers and the 8-bit RGBA surface
//   - blend: blend modes and dual-convention Porter-Duff compositing
//   - lut: the parametric color transform and its cached 3D lookup table
//
// # Concurrency
//
// Evaluation is single-threaded and synchronous: Evaluate is a plain
// recursive call tree driven by the caller's render loop. Callers must
// serialize property mutation with evaluation. Only the package logger
// and the registries are internally synchronized.
package ipgraph
