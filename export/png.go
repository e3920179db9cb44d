package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/Chickensoupwithrice/mermaid-ascii/canvas"
)

// PNG errors
var (
	ErrInvalidPNGOptions = errors.New("invalid PNG options")
	ErrNothingToDraw     = errors.New("nothing to draw")
)

// PNGOptions controls rasterization of rendered text.
type PNGOptions struct {
	// FontSize is the Go Mono point size at 72 DPI.
	FontSize float64
	// Padding is the blank margin around the text, in cells.
	Padding int
	// Background and Foreground default to white and black when nil.
	Background color.Color
	Foreground color.Color
}

// DefaultPNGOptions returns 14pt text with a one cell margin.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{FontSize: 14, Padding: 1}
}

// PNG rasterizes rendered text s onto a fixed cell grid and writes it as a PNG. Each
// character occupies as many cells as its display width.
func PNG(w io.Writer, s string, opts PNGOptions) error {
	if opts.FontSize <= 0 || opts.Padding < 0 {
		return fmt.Errorf("%w: font size %v, padding %d", ErrInvalidPNGOptions, opts.FontSize, opts.Padding)
	}
	face, err := monoFace(opts.FontSize)
	if err != nil {
		return err
	}
	defer face.Close()

	lines := strings.Split(s, "\n")
	cols := 0
	for _, l := range lines {
		cols = max(cols, canvas.StringWidth(l))
	}
	if cols == 0 {
		return ErrNothingToDraw
	}
	cellW, cellH := cellSize(face)
	width := (cols + 2*opts.Padding) * cellW
	height := (len(lines) + 2*opts.Padding) * cellH

	dc := gg.NewContext(width, height)
	dc.SetColor(colorOr(opts.Background, color.White))
	dc.Clear()
	dc.SetColor(colorOr(opts.Foreground, color.Black))
	dc.SetFontFace(face)

	ascent := float64(face.Metrics().Ascent.Ceil())
	for row, l := range lines {
		y := float64((row+opts.Padding)*cellH) + ascent
		col := opts.Padding
		for _, r := range l {
			rw := canvas.RuneWidth(r)
			if r != ' ' && rw > 0 {
				dc.DrawString(string(r), float64(col*cellW), y)
			}
			col += rw
		}
	}
	return dc.EncodePNG(w)
}

func monoFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// cellSize returns the pixel size of one grid cell: the advance of a monospace glyph
// by the face's line height.
func cellSize(face font.Face) (int, int) {
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		adv = face.Metrics().Height / 2
	}
	w := int(math.Ceil(float64(adv) / 64))
	h := face.Metrics().Height.Ceil()
	return max(w, 1), max(h, 1)
}

func colorOr(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}
