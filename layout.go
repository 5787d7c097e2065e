package ipgraph

import (
	"math"

	"github.com/gogpu/ipgraph/ipimage"
)

// TypeLayout is the registry type tag of LayoutGroupNode.
const TypeLayout = "Layout"

// Layout modes.
const (
	// LayoutModeRow places all inputs in a single row.
	LayoutModeRow = "row"
	// LayoutModeColumn places all inputs in a single column.
	LayoutModeColumn = "column"
	// LayoutModeGrid uses the explicit columns/rows properties, deriving
	// a near-square grid when either is unset.
	LayoutModeGrid = "grid"
)

func init() {
	RegisterNodeType(TypeLayout, func() Node { return NewLayoutGroupNode() })
}

// TileViewport is one grid cell in pixel coordinates with a bottom-left
// origin: row 0 of the grid sits at the highest Y.
type TileViewport struct {
	X      int
	Y      int
	Width  int
	Height int
}

// TileImage pairs an evaluated input with its viewport.
type TileImage struct {
	Image    *ipimage.Image
	Viewport TileViewport
}

// ComputeTileViewports splits a canvas into a cols-by-rows grid with the
// given spacing between tiles. Viewports are emitted in row-major order
// with row 0 placed at the top of the canvas, which in the bottom-left
// origin convention is the highest Y. Non-positive cols or rows yield nil.
func ComputeTileViewports(canvasW, canvasH, cols, rows, spacing int) []TileViewport {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	tileW := (canvasW - (cols-1)*spacing) / cols
	tileH := (canvasH - (rows-1)*spacing) / rows

	viewports := make([]TileViewport, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			viewports = append(viewports, TileViewport{
				X:      col * (tileW + spacing),
				Y:      (rows - 1 - row) * (tileH + spacing),
				Width:  tileW,
				Height: tileH,
			})
		}
	}
	return viewports
}

// LayoutGroupNode arranges its inputs in a grid of viewports for multi-up
// display. The legacy pixel path is a single-input pass-through; the tiled
// flag and viewport helpers feed the multi-up presentation without
// changing it.
type LayoutGroupNode struct {
	GroupNode
}

// NewLayoutGroupNode creates a grid layout with automatic dimensions.
func NewLayoutGroupNode() *LayoutGroupNode {
	n := &LayoutGroupNode{}
	n.initGroup(n, TypeLayout, nil)
	n.props.Add("mode", LayoutModeGrid)
	n.props.Add("columns", 0)
	n.props.Add("rows", 0)
	n.props.Add("spacing", 0)
	n.props.Add("tiled", false)
	return n
}

// SetMode selects the layout mode: row, column or grid.
func (n *LayoutGroupNode) SetMode(mode string) { n.props.Set("mode", mode) }

// SetGrid sets explicit grid dimensions for grid mode. Non-positive
// values request automatic near-square derivation.
func (n *LayoutGroupNode) SetGrid(columns, rows int) {
	n.props.Set("columns", columns)
	n.props.Set("rows", rows)
}

// SetSpacing sets the pixel gap between tiles.
func (n *LayoutGroupNode) SetSpacing(spacing int) { n.props.Set("spacing", spacing) }

// SetTiledMode toggles multi-up presentation. The flag does not alter the
// single-input pass-through of Process.
func (n *LayoutGroupNode) SetTiledMode(tiled bool) { n.props.Set("tiled", tiled) }

// TiledMode reports whether multi-up presentation is enabled.
func (n *LayoutGroupNode) TiledMode() bool { return n.props.Bool("tiled") }

// GridDims derives the grid dimensions for count inputs from the layout
// mode: row gives (count, 1), column gives (1, count), and grid uses the
// explicit properties or, when either is non-positive, a near-square
// derivation columns=ceil(sqrt(count)), rows=ceil(count/columns).
func (n *LayoutGroupNode) GridDims(count int) (cols, rows int) {
	switch n.props.String("mode") {
	case LayoutModeRow:
		return count, 1
	case LayoutModeColumn:
		return 1, count
	}
	cols = n.props.Int("columns")
	rows = n.props.Int("rows")
	if cols <= 0 || rows <= 0 {
		if count <= 0 {
			return 0, 0
		}
		cols = int(math.Ceil(math.Sqrt(float64(count))))
		rows = (count + cols - 1) / cols
	}
	return cols, rows
}

// EvaluateAllInputs evaluates every input up to the number of available
// viewport slots and pairs each non-nil result with its viewport. It
// returns nil when no input produced an image.
func (n *LayoutGroupNode) EvaluateAllInputs(ctx *EvalContext, canvasW, canvasH int) []TileImage {
	cols, rows := n.GridDims(len(n.inputs))
	viewports := ComputeTileViewports(canvasW, canvasH, cols, rows, n.props.Int("spacing"))

	tiles := make([]TileImage, 0, len(viewports))
	for i, in := range n.inputs {
		if i >= len(viewports) {
			break
		}
		img := in.Evaluate(ctx)
		if img == nil {
			continue
		}
		tiles = append(tiles, TileImage{Image: img, Viewport: viewports[i]})
	}
	if len(tiles) == 0 {
		return nil
	}
	return tiles
}

// RenderTiled composes the multi-up grid in software: every input is
// evaluated, scaled into its viewport and copied onto a canvas-sized
// surface. Full-quality contexts use the Catmull-Rom scaler, draft
// contexts the bilinear one. Returns nil when no input produced an image.
func (n *LayoutGroupNode) RenderTiled(ctx *EvalContext, canvasW, canvasH int) *ipimage.Image {
	tiles := n.EvaluateAllInputs(ctx, canvasW, canvasH)
	if tiles == nil {
		return nil
	}
	filter := ipimage.FilterBilinear
	if ctx.FullQuality() {
		filter = ipimage.FilterCatmullRom
	}

	canvas := ipimage.NewImageData(canvasW, canvasH)
	for _, tile := range tiles {
		vp := tile.Viewport
		if vp.Width <= 0 || vp.Height <= 0 {
			continue
		}
		scaled := ipimage.Scale(tile.Image.ToImageData(), vp.Width, vp.Height, filter)
		// Viewports use a bottom-left origin; surface rows run top-down.
		topY := canvasH - vp.Y - vp.Height
		for dy := 0; dy < vp.Height; dy++ {
			y := topY + dy
			if y < 0 || y >= canvasH {
				continue
			}
			srcRow := dy * vp.Width * 4
			dstRow := (y*canvasW + vp.X) * 4
			copy(canvas.Pix[dstRow:dstRow+vp.Width*4], scaled.Pix[srcRow:srcRow+vp.Width*4])
		}
	}
	return ipimage.FromImageData(canvas)
}
