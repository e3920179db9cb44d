package render

import (
	"fmt"

	"github.com/Chickensoupwithrice/mermaid-ascii/canvas"
	"github.com/Chickensoupwithrice/mermaid-ascii/geometry"
	"github.com/Chickensoupwithrice/mermaid-ascii/layout"
)

// edgeFragments holds the drawings of one edge, each on a blank canvas the size of
// the output.
type edgeFragments struct {
	line      *canvas.Canvas
	corners   *canvas.Canvas
	arrowhead *canvas.Canvas
	boxStart  *canvas.Canvas
	label     *canvas.Canvas
}

func drawEdge(g *layout.Graph, out *canvas.Canvas, e *layout.Edge) (edgeFragments, error) {
	f := edgeFragments{
		line:      out.Blank(),
		corners:   out.Blank(),
		arrowhead: out.Blank(),
		boxStart:  out.Blank(),
		label:     out.Blank(),
	}
	if len(e.Path) == 0 {
		return f, fmt.Errorf("edge has no route: %w", layout.ErrUnplaced)
	}

	segments, dirs, err := drawPath(g, f.line, e.Path)
	if err != nil {
		return f, err
	}
	drawCorners(g, f.corners, e.Path)
	drawArrowhead(g, f.arrowhead, e.Path, segments, dirs)
	if len(segments) > 0 {
		drawBoxStart(f.boxStart, segments[0][0], geometry.Between(e.Path[0], e.Path[1]))
	}
	if err := drawLabel(g, f.label, e); err != nil {
		return f, err
	}
	return f, nil
}

// drawPath draws each segment between consecutive waypoints, leaving out the cells at
// both ends: those hold a box border, a corner or the arrowhead. It returns the cells
// drawn per segment and each segment's direction. A segment too short to leave any
// cell is recorded as its start cell.
func drawPath(g *layout.Graph, c *canvas.Canvas, path []geometry.GridCoord) ([][]geometry.CanvasCoord, []geometry.Direction, error) {
	var (
		segments [][]geometry.CanvasCoord
		dirs     []geometry.Direction
	)
	prev := path[0]
	for _, next := range path[1:] {
		from, to := g.GridToCanvas(prev), g.GridToCanvas(next)
		if from == to {
			continue
		}
		cells, err := c.DrawLine(from, to, 1, 1)
		if err != nil {
			return nil, nil, err
		}
		if len(cells) == 0 {
			cells = []geometry.CanvasCoord{from}
		}
		segments = append(segments, cells)
		dirs = append(dirs, geometry.Between(prev, next))
		prev = next
	}
	return segments, dirs, nil
}

// drawCorners places a corner glyph at every interior waypoint.
func drawCorners(g *layout.Graph, c *canvas.Canvas, path []geometry.GridCoord) {
	glyphs := c.Glyphs()
	for i := 1; i < len(path)-1; i++ {
		in := geometry.Between(path[i-1], path[i])
		out := geometry.Between(path[i], path[i+1])
		_ = c.Set(g.GridToCanvas(path[i]), glyphs.PathCorner(in, out))
	}
}

// drawArrowhead places the arrowhead on the last drawn cell, pointing along the last
// segment.
func drawArrowhead(g *layout.Graph, c *canvas.Canvas, path []geometry.GridCoord, segments [][]geometry.CanvasCoord, dirs []geometry.Direction) {
	if len(segments) == 0 {
		_ = c.Set(g.GridToCanvas(path[len(path)-1]), c.Glyphs().Arrow(geometry.Middle))
		return
	}
	last := segments[len(segments)-1]
	dir := geometry.CanvasBetween(last[0], last[len(last)-1])
	if len(last) == 1 || dir == geometry.Middle {
		dir = dirs[len(dirs)-1]
	}
	_ = c.Set(last[len(last)-1], c.Glyphs().Arrow(dir))
}

// drawBoxStart marks where a path leaves its source box: the border cell just behind
// the first drawn cell.
func drawBoxStart(c *canvas.Canvas, first geometry.CanvasCoord, dir geometry.Direction) {
	r, ok := c.Glyphs().BoxStart(dir)
	if !ok {
		return
	}
	_ = c.Set(first.Add(dir.Opposite()), r)
}

// drawLabel centres the edge label on the midpoint of its label line.
func drawLabel(g *layout.Graph, c *canvas.Canvas, e *layout.Edge) error {
	if e.Label == "" || len(e.LabelLine) < 2 {
		return nil
	}
	a, b := g.GridToCanvas(e.LabelLine[0]), g.GridToCanvas(e.LabelLine[1])
	minX, maxX := min(a.X, b.X), max(a.X, b.X)
	minY, maxY := min(a.Y, b.Y), max(a.Y, b.Y)
	start := geometry.CanvasCoord{
		X: minX + (maxX-minX)/2 - canvas.StringWidth(e.Label)/2,
		Y: minY + (maxY-minY)/2,
	}
	return c.DrawText(start, e.Label)
}
