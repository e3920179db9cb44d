// Package canvas provides the resizable character grid diagrams are drawn on, and the
// compositing rules used when independently drawn fragments overlap.
package canvas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Chickensoupwithrice/mermaid-ascii/geometry"
)

// Common errors
var (
	ErrOutOfBounds     = errors.New("position out of bounds")
	ErrUnsupportedLine = errors.New("line is neither axis-aligned nor diagonal")
)

// continuation fills the second cell of a double-width rune.
const continuation rune = 0

// Canvas is a grid of single-cell characters, initialized to blanks.
//
// Coordinate System:
//   - Origin (0,0) is top-left
//   - X increases rightward
//   - Y increases downward
//   - All coordinates are in character cells
//
// A Canvas only ever grows. Writes beyond the current bounds extend it; negative
// coordinates are rejected.
type Canvas struct {
	cells   [][]rune // [y][x]
	classes map[geometry.CanvasCoord]string
	width   int
	height  int
	glyphs  *GlyphSet
}

// New creates a blank canvas of the given size drawing with glyphs.
// A nil glyph set selects Unicode.
func New(width, height int, glyphs *GlyphSet) *Canvas {
	if glyphs == nil {
		glyphs = Unicode
	}
	c := &Canvas{glyphs: glyphs}
	c.Resize(width, height)
	return c
}

// Blank returns an empty canvas with the size and glyph set of c.
func (c *Canvas) Blank() *Canvas {
	return New(c.width, c.height, c.glyphs)
}

// Clone returns a deep copy of c.
func (c *Canvas) Clone() *Canvas {
	out := c.Blank()
	for y := range c.cells {
		copy(out.cells[y], c.cells[y])
	}
	for p, class := range c.classes {
		out.setClass(p, class)
	}
	return out
}

// Glyphs returns the glyph set the canvas draws with.
func (c *Canvas) Glyphs() *GlyphSet {
	return c.glyphs
}

// Size returns the width and height of the canvas.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Resize grows the canvas to at least width x height. It never shrinks and keeps all
// existing content at the same coordinates.
func (c *Canvas) Resize(width, height int) {
	if width > c.width {
		for y := range c.cells {
			c.cells[y] = append(c.cells[y], blankRow(width-c.width)...)
		}
		c.width = width
	}
	if height > c.height {
		for y := c.height; y < height; y++ {
			c.cells = append(c.cells, blankRow(c.width))
		}
		c.height = height
	}
}

func blankRow(n int) []rune {
	row := make([]rune, n)
	for i := range row {
		row[i] = ' '
	}
	return row
}

// Get returns the character at p, or a blank when p is outside the canvas.
func (c *Canvas) Get(p geometry.CanvasCoord) rune {
	if p.X < 0 || p.X >= c.width || p.Y < 0 || p.Y >= c.height {
		return ' '
	}
	return c.cells[p.Y][p.X]
}

// Class returns the style class recorded for p, if any.
func (c *Canvas) Class(p geometry.CanvasCoord) string {
	return c.classes[p]
}

// Set places a character at p, growing the canvas when needed.
func (c *Canvas) Set(p geometry.CanvasCoord, char rune) error {
	if p.X < 0 || p.Y < 0 {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	c.Resize(p.X+1, p.Y+1)
	c.cells[p.Y][p.X] = char
	return nil
}

func (c *Canvas) setClass(p geometry.CanvasCoord, class string) {
	if class == "" {
		return
	}
	if c.classes == nil {
		c.classes = make(map[geometry.CanvasCoord]string)
	}
	c.classes[p] = class
}

// DrawText places text left to right starting at origin.
func (c *Canvas) DrawText(origin geometry.CanvasCoord, text string) error {
	return c.DrawTextClass(origin, text, "")
}

// DrawTextClass places text like DrawText and tags every written cell with class.
// Double-width runes take two cells; zero-width runes are dropped.
func (c *Canvas) DrawTextClass(origin geometry.CanvasCoord, text, class string) error {
	if origin.X < 0 || origin.Y < 0 {
		return fmt.Errorf("%w: text at %v", ErrOutOfBounds, origin)
	}
	x := origin.X
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		p := geometry.CanvasCoord{X: x, Y: origin.Y}
		_ = c.Set(p, r)
		c.setClass(p, class)
		if w == 2 {
			next := geometry.CanvasCoord{X: x + 1, Y: origin.Y}
			_ = c.Set(next, continuation)
			c.setClass(next, class)
		}
		x += w
	}
	return nil
}

// DrawLine draws a straight segment from one cell towards another and returns the
// cells written, in order. startInset cells are skipped at the start and endInset
// cells at the end. Only the eight compass directions are supported.
func (c *Canvas) DrawLine(from, to geometry.CanvasCoord, startInset, endInset int) ([]geometry.CanvasCoord, error) {
	dx, dy := to.X-from.X, to.Y-from.Y
	if dx != 0 && dy != 0 && geometry.Abs(dx) != geometry.Abs(dy) {
		return nil, fmt.Errorf("%w: %v -> %v", ErrUnsupportedLine, from, to)
	}

	dir := geometry.CanvasBetween(from, to)
	if dir == geometry.Middle {
		return nil, nil
	}

	char := c.glyphs.Line(dir)
	length := max(geometry.Abs(dx), geometry.Abs(dy))
	stepX, stepY := dir.Delta()

	var drawn []geometry.CanvasCoord
	for i := startInset; i <= length-endInset; i++ {
		p := geometry.CanvasCoord{X: from.X + i*stepX, Y: from.Y + i*stepY}
		if err := c.Set(p, char); err != nil {
			return drawn, err
		}
		drawn = append(drawn, p)
	}
	return drawn, nil
}

// DrawBox draws a rectangle outline with its top-left corner at origin. width and
// height count cells including the border.
func (c *Canvas) DrawBox(origin geometry.CanvasCoord, width, height int) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("invalid box dimensions %dx%d", width, height)
	}
	left, top := origin.X, origin.Y
	right, bottom := left+width-1, top+height-1
	g := c.glyphs

	for x := left + 1; x < right; x++ {
		_ = c.Set(geometry.CanvasCoord{X: x, Y: top}, g.Horizontal)
		_ = c.Set(geometry.CanvasCoord{X: x, Y: bottom}, g.Horizontal)
	}
	for y := top + 1; y < bottom; y++ {
		_ = c.Set(geometry.CanvasCoord{X: left, Y: y}, g.Vertical)
		_ = c.Set(geometry.CanvasCoord{X: right, Y: y}, g.Vertical)
	}
	_ = c.Set(geometry.CanvasCoord{X: left, Y: top}, g.TopLeft)
	_ = c.Set(geometry.CanvasCoord{X: right, Y: top}, g.TopRight)
	_ = c.Set(geometry.CanvasCoord{X: left, Y: bottom}, g.BottomLeft)
	return c.Set(geometry.CanvasCoord{X: right, Y: bottom}, g.BottomRight)
}

// Merge composites fragments onto a copy of base, each shifted by offset. Blank cells
// of a fragment are transparent. When the base glyph set fuses junctions and both the
// existing and the incoming cell are junction glyphs, they are fused; otherwise the
// incoming cell overwrites. Fragments are applied in argument order.
func Merge(base *Canvas, offset geometry.CanvasCoord, fragments ...*Canvas) *Canvas {
	merged := base.Clone()
	for _, f := range fragments {
		if f == nil {
			continue
		}
		merged.Resize(f.width+offset.X, f.height+offset.Y)
		for y := 0; y < f.height; y++ {
			for x := 0; x < f.width; x++ {
				incoming := f.cells[y][x]
				if incoming == ' ' {
					continue
				}
				p := geometry.CanvasCoord{X: x + offset.X, Y: y + offset.Y}
				if p.X < 0 || p.Y < 0 {
					continue
				}
				existing := merged.cells[p.Y][p.X]
				if merged.glyphs.Fuses && IsJunction(existing) && IsJunction(incoming) {
					incoming = Fuse(existing, incoming)
				}
				merged.cells[p.Y][p.X] = incoming
				if class, ok := f.classes[geometry.CanvasCoord{X: x, Y: y}]; ok {
					merged.setClass(p, class)
				} else {
					delete(merged.classes, p)
				}
			}
		}
	}
	return merged
}

// Lines returns the rows of the canvas as strings.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.height)
	var sb strings.Builder
	for y, row := range c.cells {
		sb.Reset()
		sb.Grow(c.width)
		for _, r := range row {
			if r == continuation {
				continue
			}
			sb.WriteRune(r)
		}
		lines[y] = sb.String()
	}
	return lines
}

// String returns the canvas as rows joined by newlines, without a trailing newline.
func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

// Styled serializes the canvas like String, passing every run of cells sharing a
// non-empty style class through style.
func (c *Canvas) Styled(style func(class, text string) string) string {
	var sb strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		runClass := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runClass != "" && style != nil {
				sb.WriteString(style(runClass, run.String()))
			} else {
				sb.WriteString(run.String())
			}
			run.Reset()
		}
		for x, r := range row {
			class := c.classes[geometry.CanvasCoord{X: x, Y: y}]
			if class != runClass {
				flush()
				runClass = class
			}
			if r != continuation {
				run.WriteRune(r)
			}
		}
		flush()
	}
	return sb.String()
}
