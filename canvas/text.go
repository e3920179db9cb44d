package canvas

import (
	"github.com/mattn/go-runewidth"
)

// widths measures ambiguous-width characters, such as box drawing, as one cell
// whatever the locale.
var widths = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// RuneWidth returns the number of cells r occupies: 0, 1 or 2.
func RuneWidth(r rune) int {
	if r == continuation {
		return 0
	}
	return widths.RuneWidth(r)
}

// StringWidth returns the display width of text in character cells.
func StringWidth(text string) int {
	width := 0
	for _, r := range text {
		width += RuneWidth(r)
	}
	return width
}

// TruncateToWidth shortens text to at most maxWidth cells, ending it with an ellipsis
// when anything was cut.
func TruncateToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if StringWidth(text) <= maxWidth {
		return text
	}
	return widths.Truncate(text, maxWidth, "…")
}
