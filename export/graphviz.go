package export

import (
	"fmt"
	"strings"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
)

// GraphvizExporter exports diagrams to Graphviz DOT syntax
type GraphvizExporter struct{}

// NewGraphvizExporter creates a new Graphviz exporter
func NewGraphvizExporter() *GraphvizExporter {
	return &GraphvizExporter{}
}

// Export converts the diagram to Graphviz DOT syntax
func (e *GraphvizExporter) Export(d *diagram.Diagram) (string, error) {
	if err := checkDiagram(d); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("digraph G {\n")
	rankdir := "TB"
	if orientation(d) == diagram.LeftRight {
		rankdir = "LR"
	}
	fmt.Fprintf(&sb, "  rankdir=%s;\n", rankdir)
	sb.WriteString("  node [shape=box];\n\n")

	for _, name := range d.Nodes {
		if class := d.ClassOf(name); class != "" {
			fmt.Fprintf(&sb, "  %s [class=%s];\n", quoteDOT(name), quoteDOT(class))
		} else {
			fmt.Fprintf(&sb, "  %s;\n", quoteDOT(name))
		}
	}

	records := d.Records()
	if len(records) > 0 {
		sb.WriteString("\n")
	}
	for _, r := range records {
		if r.Label != "" {
			fmt.Fprintf(&sb, "  %s -> %s [label=%s];\n", quoteDOT(r.Parent), quoteDOT(r.Child), quoteDOT(r.Label))
		} else {
			fmt.Fprintf(&sb, "  %s -> %s;\n", quoteDOT(r.Parent), quoteDOT(r.Child))
		}
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

// quoteDOT returns s as a quoted DOT string
func quoteDOT(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// FileExtension returns the recommended file extension
func (e *GraphvizExporter) FileExtension() string {
	return ".dot"
}

// FormatName returns the format name
func (e *GraphvizExporter) FormatName() string {
	return string(FormatDOT)
}
