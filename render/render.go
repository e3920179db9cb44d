// Package render draws a laid-out graph onto a character canvas.
//
// Boxes are merged first. Every edge then contributes five fragments (line segments,
// corners, an arrowhead, a junction where it leaves its source box, and its label),
// and each kind is merged across all edges before the next, so junction fusion always
// sees lines before corners and corners before arrowheads.
package render

import (
	"fmt"

	"github.com/Chickensoupwithrice/mermaid-ascii/canvas"
	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
	"github.com/Chickensoupwithrice/mermaid-ascii/geometry"
	"github.com/Chickensoupwithrice/mermaid-ascii/layout"
)

// Render lays out d and returns its text rendering. Rows are separated by newlines
// and the last row has no trailing newline. On failure no partial output is returned.
func Render(d *diagram.Diagram, opts diagram.Options) (string, error) {
	c, err := RenderCanvas(d, opts)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// RenderCanvas lays out d and returns the drawn canvas.
func RenderCanvas(d *diagram.Diagram, opts diagram.Options) (*canvas.Canvas, error) {
	g, err := layout.Build(d, opts)
	if err != nil {
		return nil, err
	}
	return Draw(g)
}

// fragments collects the per-edge drawings of each kind, in edge order.
type fragments struct {
	lines      []*canvas.Canvas
	corners    []*canvas.Canvas
	arrowheads []*canvas.Canvas
	boxStarts  []*canvas.Canvas
	labels     []*canvas.Canvas
}

// Draw composites every node box not drawn yet onto the graph's canvas, then returns
// a copy of it with every edge of g drawn on top. The graph keeps the boxes but not
// the edges, so drawing the same graph again gives the same result.
func Draw(g *layout.Graph) (*canvas.Canvas, error) {
	out := g.Canvas()
	var drawn []*layout.Node
	for _, n := range g.Nodes() {
		if n.Drawn {
			continue
		}
		if n.Grid == nil || n.Box == nil {
			return nil, fmt.Errorf("draw %q: %w", n.Name, layout.ErrUnplaced)
		}
		out = canvas.Merge(out, n.Canvas, n.Box)
		drawn = append(drawn, n)
	}
	if len(drawn) > 0 {
		g.SetCanvas(out)
		for _, n := range drawn {
			n.Drawn = true
		}
	}

	var f fragments
	for _, e := range g.Edges() {
		ef, err := drawEdge(g, out, e)
		if err != nil {
			return nil, fmt.Errorf("draw %s -> %s: %w", e.From.Name, e.To.Name, err)
		}
		f.lines = append(f.lines, ef.line)
		f.corners = append(f.corners, ef.corners)
		f.arrowheads = append(f.arrowheads, ef.arrowhead)
		f.boxStarts = append(f.boxStarts, ef.boxStart)
		f.labels = append(f.labels, ef.label)
	}

	origin := geometry.CanvasCoord{}
	for _, group := range [][]*canvas.Canvas{f.lines, f.corners, f.arrowheads, f.boxStarts, f.labels} {
		out = canvas.Merge(out, origin, group...)
	}

	g.Logger().Debug("diagram drawn", "nodes", len(g.Nodes()), "edges", len(g.Edges()))
	return out, nil
}
