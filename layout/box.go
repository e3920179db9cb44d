package layout

import (
	"github.com/Chickensoupwithrice/mermaid-ascii/canvas"
	"github.com/Chickensoupwithrice/mermaid-ascii/geometry"
)

// boxFragment draws n's box with its label centred, on a canvas of its own. The box
// spans the first two columns and rows of the node's block; its right and bottom
// border fall on the first cell of the third.
func (g *Graph) boxFragment(n *Node, glyphs *canvas.GlyphSet) *canvas.Canvas {
	c := *n.Grid
	w := g.columnWidth[c.X] + g.columnWidth[c.X+1]
	h := g.rowHeight[c.Y] + g.rowHeight[c.Y+1]

	box := canvas.New(w+1, h+1, glyphs)
	_ = box.DrawBox(geometry.CanvasCoord{}, w+1, h+1)

	label := geometry.CanvasCoord{
		X: w/2 - geometry.CeilDiv(canvas.StringWidth(n.Name), 2) + 1,
		Y: h / 2,
	}
	_ = box.DrawTextClass(label, n.Name, n.StyleClass)
	return box
}
