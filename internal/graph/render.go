package graph

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

// Canvas constants: 12x10 inches at 300 DPI.
const (
	canvasWidth  = 3600
	canvasHeight = 3000
	canvasMargin = 300

	// Node area in points² before centrality weighting; radii are derived
	// from area so high-centrality nodes grow visibly but sublinearly.
	baseNodeArea   = 3000.0
	centralityArea = 10000.0
	pointsPerInch  = 72.0
	dpi            = 300.0
)

// Renderer draws a graph to a PNG file using a seeded spring layout.
type Renderer struct {
	Layout LayoutConfig
	Title  string
}

// NewRenderer returns a renderer with the pipeline's fixed layout settings.
func NewRenderer() *Renderer {
	return &Renderer{
		Layout: DefaultLayoutConfig(),
		Title:  "Conceptual Map Visualization",
	}
}

// Render lays the graph out and writes the PNG to path.
func (r *Renderer) Render(g *Graph, path string) error {
	pos := SpringLayout(g, r.Layout)
	centrality := g.DegreeCentrality()

	dc := gg.NewContext(canvasWidth, canvasHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	toCanvas := func(p Point) (float64, float64) {
		x := canvasMargin + p.X*(canvasWidth-2*canvasMargin)
		// Flip Y so layout "up" is canvas "up".
		y := canvasHeight - canvasMargin - p.Y*(canvasHeight-2*canvasMargin)
		return x, y
	}

	// Edges first so nodes draw on top.
	dc.SetRGBA(0.5, 0.5, 0.5, 0.5)
	dc.SetLineWidth(2 * dpi / pointsPerInch)
	for _, e := range g.Edges() {
		x1, y1 := toCanvas(pos[e.U])
		x2, y2 := toCanvas(pos[e.V])
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}

	for _, name := range g.Nodes() {
		x, y := toCanvas(pos[name])

		// Area in points² scaled by degree centrality, converted to a
		// pixel radius.
		area := baseNodeArea + centralityArea*centrality[name]
		radius := math.Sqrt(area/math.Pi) * dpi / pointsPerInch

		// skyblue
		dc.SetRGBA(135/255.0, 206/255.0, 235/255.0, 0.9)
		dc.DrawCircle(x, y, radius)
		dc.Fill()
	}

	// Labels on top of everything.
	dc.SetRGB(0, 0, 0)
	for _, name := range g.Nodes() {
		x, y := toCanvas(pos[name])
		dc.DrawStringAnchored(name, x, y, 0.5, 0.5)
	}

	if r.Title != "" {
		dc.DrawStringAnchored(r.Title, canvasWidth/2, canvasMargin/2, 0.5, 0.5)
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save visual map png: %w", err)
	}
	return nil
}
