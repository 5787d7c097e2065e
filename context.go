package ipgraph

// EvalContext carries the per-frame evaluation request. It is passed
// unchanged through the recursive evaluation.
//
// Frame is the only cache key: changing Width, Height or Quality without
// changing Frame does not invalidate node caches. This mirrors the render
// loop contract where those change only together with a frame step.
type EvalContext struct {
	// Frame is the global frame number being evaluated, 1-based.
	Frame int

	// Width and Height are the requested output dimensions. Zero means
	// "whatever the source produces".
	Width  int
	Height int

	// Quality is a render-quality hint in [0, 1]. Values below 1 allow
	// nodes to trade fidelity for speed (for example cheaper resampling
	// in tiled layouts). Zero is treated as full quality.
	Quality float64
}

// FullQuality reports whether the context requests full render quality.
func (c *EvalContext) FullQuality() bool {
	return c.Quality == 0 || c.Quality >= 1
}
