package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorGreen = lipgloss.Color("35")  // success
	colorWhite = lipgloss.Color("255") // values
	colorGray  = lipgloss.Color("245") // secondary text
	colorDim   = lipgloss.Color("240") // muted text
)

var (
	styleDim   = lipgloss.NewStyle().Foreground(colorDim)
	styleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printFile prints an indented "→ path" line for a written file.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

// =============================================================================
// Diagram Colouring
// =============================================================================

// classStyles converts a diagram's style classes to lipgloss styles. Only color, fill
// and font-weight are understood; other properties are ignored.
func classStyles(classes map[string]diagram.StyleClass) map[string]lipgloss.Style {
	styles := make(map[string]lipgloss.Style, len(classes))
	for name, sc := range classes {
		style := lipgloss.NewStyle()
		if c, ok := sc.Styles["color"]; ok {
			style = style.Foreground(lipgloss.Color(c))
		}
		if c, ok := sc.Styles["fill"]; ok {
			style = style.Background(lipgloss.Color(c))
		}
		if strings.EqualFold(sc.Styles["font-weight"], "bold") {
			style = style.Bold(true)
		}
		styles[name] = style
	}
	return styles
}

// colorize returns a canvas style function painting each class with its lipgloss style.
func colorize(classes map[string]diagram.StyleClass) func(class, text string) string {
	styles := classStyles(classes)
	return func(class, text string) string {
		if s, ok := styles[class]; ok {
			return s.Render(text)
		}
		return text
	}
}
