package canvas

import "github.com/Chickensoupwithrice/mermaid-ascii/geometry"

// GlyphSet defines the characters used to draw boxes, lines and arrows.
type GlyphSet struct {
	Name string

	Horizontal rune
	Vertical   rune
	// Rising is drawn for UpperRight/LowerLeft segments, Falling for UpperLeft/LowerRight.
	Rising  rune
	Falling rune

	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	// Corner is used where a path turns in a way none of the four corners describe.
	// It is '+' in both sets so it never fuses into a cross.
	Corner rune

	ArrowUp         rune
	ArrowDown       rune
	ArrowLeft       rune
	ArrowRight      rune
	ArrowUpperLeft  rune
	ArrowUpperRight rune
	ArrowLowerLeft  rune
	ArrowLowerRight rune

	// Fuses enables junction fusion when fragments overlap.
	Fuses bool
}

// Predefined glyph sets
var (
	// Unicode uses box-drawing characters and fuses overlapping junctions.
	Unicode = &GlyphSet{
		Name:            "unicode",
		Horizontal:      '─',
		Vertical:        '│',
		Rising:          '╱',
		Falling:         '╲',
		TopLeft:         '┌',
		TopRight:        '┐',
		BottomLeft:      '└',
		BottomRight:     '┘',
		Corner:          '+',
		ArrowUp:         '▲',
		ArrowDown:       '▼',
		ArrowLeft:       '◄',
		ArrowRight:      '►',
		ArrowUpperLeft:  '◤',
		ArrowUpperRight: '◥',
		ArrowLowerLeft:  '◣',
		ArrowLowerRight: '◢',
		Fuses:           true,
	}

	// ASCII uses plain characters; later fragments always overwrite.
	ASCII = &GlyphSet{
		Name:            "ascii",
		Horizontal:      '-',
		Vertical:        '|',
		Rising:          '/',
		Falling:         '\\',
		TopLeft:         '+',
		TopRight:        '+',
		BottomLeft:      '+',
		BottomRight:     '+',
		Corner:          '+',
		ArrowUp:         '^',
		ArrowDown:       'v',
		ArrowLeft:       '<',
		ArrowRight:      '>',
		ArrowUpperLeft:  '\\',
		ArrowUpperRight: '/',
		ArrowLowerLeft:  '/',
		ArrowLowerRight: '\\',
	}
)

// Glyphs returns the ASCII set when ascii is true and the Unicode set otherwise.
func Glyphs(ascii bool) *GlyphSet {
	if ascii {
		return ASCII
	}
	return Unicode
}

// Line returns the glyph used to draw a segment heading in d.
func (g *GlyphSet) Line(d geometry.Direction) rune {
	switch d {
	case geometry.Up, geometry.Down:
		return g.Vertical
	case geometry.Left, geometry.Right:
		return g.Horizontal
	case geometry.UpperRight, geometry.LowerLeft:
		return g.Rising
	case geometry.UpperLeft, geometry.LowerRight:
		return g.Falling
	default:
		return ' '
	}
}

// Arrow returns the arrowhead pointing in d. Middle has no arrowhead of its own and
// falls back to Up.
func (g *GlyphSet) Arrow(d geometry.Direction) rune {
	switch d {
	case geometry.Up, geometry.Middle:
		return g.ArrowUp
	case geometry.Down:
		return g.ArrowDown
	case geometry.Left:
		return g.ArrowLeft
	case geometry.Right:
		return g.ArrowRight
	case geometry.UpperLeft:
		return g.ArrowUpperLeft
	case geometry.UpperRight:
		return g.ArrowUpperRight
	case geometry.LowerLeft:
		return g.ArrowLowerLeft
	case geometry.LowerRight:
		return g.ArrowLowerRight
	default:
		return g.ArrowUp
	}
}

// PathCorner returns the glyph drawn where a path arriving in direction in leaves in
// direction out.
func (g *GlyphSet) PathCorner(in, out geometry.Direction) rune {
	switch {
	case in == geometry.Right && out == geometry.Down, in == geometry.Up && out == geometry.Left:
		return g.TopRight
	case in == geometry.Right && out == geometry.Up, in == geometry.Down && out == geometry.Left:
		return g.BottomRight
	case in == geometry.Left && out == geometry.Down, in == geometry.Up && out == geometry.Right:
		return g.TopLeft
	case in == geometry.Left && out == geometry.Up, in == geometry.Down && out == geometry.Right:
		return g.BottomLeft
	default:
		return g.Corner
	}
}

// BoxStart returns the junction drawn on a node border where a path leaves it heading
// in d. The second result is false when the set has no such glyph.
func (g *GlyphSet) BoxStart(d geometry.Direction) (rune, bool) {
	if !g.Fuses {
		return 0, false
	}
	switch d {
	case geometry.Up:
		return '┴', true
	case geometry.Down:
		return '┬', true
	case geometry.Left:
		return '┤', true
	case geometry.Right:
		return '├', true
	default:
		return 0, false
	}
}
