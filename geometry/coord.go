// Package geometry holds the value types shared by the layout, routing and drawing
// stages: grid coordinates, canvas coordinates and directions.
package geometry

import "fmt"

// GridCoord addresses a cell of the abstract layout grid. Every node reserves a 3x3
// block of these cells; edges are routed through the free ones.
type GridCoord struct {
	X, Y int
}

// CanvasCoord addresses one character cell of the output canvas.
//
// It is deliberately a distinct type from GridCoord. Only the layout engine knows the
// column widths and row heights required to convert between the two.
type CanvasCoord struct {
	X, Y int
}

// String implements fmt.Stringer.
func (c GridCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns the cell reached from c by applying the block offset of d.
// For a node whose reserved block starts at c, Step(Right) is the middle cell of the
// block's right border.
func (c GridCoord) Step(d Direction) GridCoord {
	dx, dy := d.Offset()
	return GridCoord{X: c.X + dx, Y: c.Y + dy}
}

// Add translates c by a unit vector in direction d.
func (c GridCoord) Add(d Direction) GridCoord {
	dx, dy := d.Delta()
	return GridCoord{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the taxicab distance between two grid cells.
func (c GridCoord) Manhattan(o GridCoord) int {
	return Abs(c.X-o.X) + Abs(c.Y-o.Y)
}

// String implements fmt.Stringer.
func (c CanvasCoord) String() string {
	return fmt.Sprintf("[%d,%d]", c.X, c.Y)
}

// Add translates c by a unit vector in direction d.
func (c CanvasCoord) Add(d Direction) CanvasCoord {
	dx, dy := d.Delta()
	return CanvasCoord{X: c.X + dx, Y: c.Y + dy}
}

// Offset translates c by another canvas coordinate.
func (c CanvasCoord) Offset(o CanvasCoord) CanvasCoord {
	return CanvasCoord{X: c.X + o.X, Y: c.Y + o.Y}
}
