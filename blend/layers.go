package blend

import "github.com/gogpu/ipgraph/ipimage"

// Layer pairs a surface with its compositing settings for multi-layer
// stacking. Layers composite bottom-to-top in slice order.
type Layer struct {
	Data    *ipimage.ImageData
	Mode    Mode
	Opacity float64
	Visible bool
}

// CompositeLayers composites a layer list bottom-to-top onto a fully
// transparent width-by-height canvas. Invisible layers, zero-opacity
// layers and nil surfaces are skipped; layers whose dimensions differ
// from the canvas are resized with bilinear interpolation first.
func CompositeLayers(layers []Layer, width, height int, premultiplied bool) *ipimage.ImageData {
	result := ipimage.NewImageData(width, height)
	for _, layer := range layers {
		if layer.Data == nil || !layer.Visible || layer.Opacity <= 0 {
			continue
		}
		data := ipimage.Resize(layer.Data, width, height)
		composited, err := Composite(result, data, layer.Mode, layer.Opacity, premultiplied)
		if err != nil {
			// Unreachable after the resize; skip the layer rather than fail.
			continue
		}
		result = composited
	}
	return result
}
