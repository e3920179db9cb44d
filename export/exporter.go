// Package export writes diagrams out: as rendered text, as a PNG of the rendered
// text, or converted to another graph description language.
package export

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
)

// Format represents an export format
type Format string

const (
	// FormatText renders the diagram as box-drawing text
	FormatText Format = "text"
	// FormatMermaid exports to Mermaid flowchart syntax
	FormatMermaid Format = "mermaid"
	// FormatDOT exports to Graphviz DOT syntax
	FormatDOT Format = "dot"
	// FormatD2 exports to D2 syntax
	FormatD2 Format = "d2"
	// FormatPlantUML exports to PlantUML syntax
	FormatPlantUML Format = "plantuml"
	// FormatJSON exports the diagram model as JSON
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for format names no exporter handles.
var ErrUnknownFormat = errors.New("unknown export format")

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a diagram to the target format
	Export(d *diagram.Diagram) (string, error)
	// FileExtension returns the recommended file extension for this format
	FileExtension() string
	// FormatName returns the name of this format
	FormatName() string
}

// NewExporter creates an exporter for the specified format. Only the text exporter
// reads opts.
func NewExporter(format Format, opts diagram.Options) (Exporter, error) {
	switch format {
	case FormatText:
		return NewTextExporter(opts), nil
	case FormatMermaid:
		return NewMermaidExporter(), nil
	case FormatDOT:
		return NewGraphvizExporter(), nil
	case FormatD2:
		return NewD2Exporter(), nil
	case FormatPlantUML:
		return NewPlantUMLExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt", "ascii":
		return FormatText, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "dot", "graphviz", "gv":
		return FormatDOT, nil
	case "d2":
		return FormatD2, nil
	case "plantuml", "puml":
		return FormatPlantUML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Formats returns every available export format.
func Formats() []Format {
	return []Format{FormatText, FormatMermaid, FormatDOT, FormatD2, FormatPlantUML, FormatJSON}
}

// WriteText writes a rendered diagram followed by a newline.
func WriteText(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func checkDiagram(d *diagram.Diagram) error {
	if d == nil || len(d.Nodes) == 0 {
		return diagram.ErrEmptyDiagram
	}
	return nil
}

var plainID = regexp.MustCompile(`^\w+$`)

// nodeIDs assigns each node an identifier usable in the target syntax: the name itself
// when it is a plain word, otherwise N followed by its position.
func nodeIDs(d *diagram.Diagram) map[string]string {
	ids := make(map[string]string, len(d.Nodes))
	taken := make(map[string]bool, len(d.Nodes))
	for _, name := range d.Nodes {
		if plainID.MatchString(name) {
			ids[name] = name
			taken[name] = true
		}
	}
	for i, name := range d.Nodes {
		if _, ok := ids[name]; ok {
			continue
		}
		id := fmt.Sprintf("N%d", i)
		for taken[id] {
			id += "_"
		}
		ids[name] = id
		taken[id] = true
	}
	return ids
}

// orientation returns the orientation to export, defaulting like the renderer.
func orientation(d *diagram.Diagram) diagram.Orientation {
	return diagram.Options{}.OrientationFor(d)
}
