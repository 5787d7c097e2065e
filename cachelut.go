package ipgraph

import (
	"github.com/gogpu/ipgraph/ipimage"
	"github.com/gogpu/ipgraph/lut"
)

// TypeCacheLUT is the registry type tag of CacheLUTNode.
const TypeCacheLUT = "CacheLUT"

// DefaultLUTSize is the default edge length of the cached color cube.
const DefaultLUTSize = 33

func init() {
	RegisterNodeType(TypeCacheLUT, func() Node { return NewCacheLUTNode() })
}

// CacheLUTNode applies the parametric color transform through a cached 3D
// lookup table. When disabled or when every parameter sits at its identity
// value, the input buffer is returned by reference, unchanged. Otherwise
// the node builds (or reuses) a LUT for the current parameters and applies
// it per pixel, leaving alpha untouched.
//
// The LUT cache is stamped with the property version at build time and
// regenerated only when a parameter or the size changed since, or after
// InvalidateLUT or Dispose.
type CacheLUTNode struct {
	BaseNode

	cube         *lut.Cube
	builtVersion uint64
}

// NewCacheLUTNode creates an enabled node with identity parameters.
func NewCacheLUTNode() *CacheLUTNode {
	n := &CacheLUTNode{}
	n.initNode(n, TypeCacheLUT)
	n.props.Add("enabled", true)
	n.props.Add("exposure", 0.0)
	n.props.Add("contrast", 1.0)
	n.props.Add("saturation", 1.0)
	n.props.Add("brightness", 0.0)
	n.props.Add("gamma", 1.0)
	n.props.Add("temperature", 0.0)
	n.props.Add("tint", 0.0)
	n.props.Add("lutSize", DefaultLUTSize)
	return n
}

// SetEnabled toggles the transform. A disabled node always bypasses.
func (n *CacheLUTNode) SetEnabled(enabled bool) { n.props.Set("enabled", enabled) }

// Enabled reports whether the transform is active.
func (n *CacheLUTNode) Enabled() bool { return n.props.Bool("enabled") }

// SetLUTSize sets the edge length of the color cube. Sizes below 2 are
// not validated here; they are the caller's responsibility.
func (n *CacheLUTNode) SetLUTSize(size int) { n.props.Set("lutSize", size) }

// Params returns the current transform parameters.
func (n *CacheLUTNode) Params() lut.Params {
	return lut.Params{
		Exposure:    n.props.Float("exposure"),
		Contrast:    n.props.Float("contrast"),
		Saturation:  n.props.Float("saturation"),
		Brightness:  n.props.Float("brightness"),
		Gamma:       n.props.Float("gamma"),
		Temperature: n.props.Float("temperature"),
		Tint:        n.props.Float("tint"),
	}
}

// SetParams sets all transform parameters at once.
func (n *CacheLUTNode) SetParams(p lut.Params) {
	n.props.Set("exposure", p.Exposure)
	n.props.Set("contrast", p.Contrast)
	n.props.Set("saturation", p.Saturation)
	n.props.Set("brightness", p.Brightness)
	n.props.Set("gamma", p.Gamma)
	n.props.Set("temperature", p.Temperature)
	n.props.Set("tint", p.Tint)
}

// IsIdentityTransform reports whether every parameter equals its identity
// value, in which case evaluation bypasses the LUT entirely.
func (n *CacheLUTNode) IsIdentityTransform() bool {
	return n.Params().IsIdentity()
}

// InvalidateLUT drops the cached cube, forcing a rebuild on next use.
func (n *CacheLUTNode) InvalidateLUT() {
	n.cube = nil
}

// Dispose drops the cached cube along with the node's graph state.
func (n *CacheLUTNode) Dispose() {
	n.InvalidateLUT()
	n.BaseNode.Dispose()
}

// Process transforms the first input. Disabled or identity parameters
// return the input by reference.
func (n *CacheLUTNode) Process(_ *EvalContext, inputs []*ipimage.Image) *ipimage.Image {
	if len(inputs) == 0 || inputs[0] == nil {
		return nil
	}
	in := inputs[0]
	if !n.Enabled() || n.IsIdentityTransform() {
		return in
	}
	cube := n.ensureLUT()
	return applyCube(in, cube)
}

// ensureLUT returns a cube matching the current parameters, regenerating
// it only when a property changed since the last build.
func (n *CacheLUTNode) ensureLUT() *lut.Cube {
	version := n.props.Version()
	if n.cube != nil && n.builtVersion == version {
		return n.cube
	}
	size := n.props.Int("lutSize")
	if size <= 0 {
		size = DefaultLUTSize
	}
	Logger().Debug("rebuilding color cube", "node", n.name, "size", size)
	n.cube = lut.Generate(size, n.Params())
	n.builtVersion = version
	return n.cube
}

// applyCube runs every pixel of a buffer through the cube. Samples are
// normalized to [0, 1] via the element type's scale (255 for uint8, 65535
// for uint16, 1.0 for float32 and anything unrecognized) and denormalized
// after lookup. Alpha and buffers with fewer than three channels pass
// through unchanged.
func applyCube(in *ipimage.Image, cube *lut.Cube) *ipimage.Image {
	out := in.DeepClone()
	channels := in.Channels()
	if channels < 3 {
		return out
	}
	scale := in.Type().NormScale()
	count := in.Width() * in.Height()
	for p := 0; p < count; p++ {
		base := p * channels
		r := in.Sample(base) / scale
		g := in.Sample(base+1) / scale
		b := in.Sample(base+2) / scale
		or, og, ob := cube.Lookup(r, g, b)
		out.SetSample(base, or*scale)
		out.SetSample(base+1, og*scale)
		out.SetSample(base+2, ob*scale)
	}
	return out
}
