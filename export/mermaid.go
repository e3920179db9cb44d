package export

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
)

// MermaidExporter exports diagrams to Mermaid flowchart syntax
type MermaidExporter struct{}

// NewMermaidExporter creates a new Mermaid exporter
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{}
}

// Export converts the diagram to Mermaid syntax. Nodes are declared first so that
// importing the result keeps their order.
func (e *MermaidExporter) Export(d *diagram.Diagram) (string, error) {
	if err := checkDiagram(d); err != nil {
		return "", err
	}
	ids := nodeIDs(d)

	var sb strings.Builder
	for _, key := range []string{diagram.HintPaddingX, diagram.HintPaddingY} {
		if v, ok := d.Hints[key]; ok {
			axis := "X"
			if key == diagram.HintPaddingY {
				axis = "Y"
			}
			fmt.Fprintf(&sb, "padding%s=%s\n", axis, v)
		}
	}
	fmt.Fprintf(&sb, "graph %s\n", orientation(d))

	for _, name := range d.Nodes {
		id := ids[name]
		if id == name && name != "end" {
			fmt.Fprintf(&sb, "    %s\n", id)
		} else {
			fmt.Fprintf(&sb, "    %s[\"%s\"]\n", id, escapeMermaid(name))
		}
	}

	for _, r := range d.Records() {
		if r.Label != "" {
			fmt.Fprintf(&sb, "    %s -->|\"%s\"| %s\n", ids[r.Parent], escapeMermaid(r.Label), ids[r.Child])
		} else {
			fmt.Fprintf(&sb, "    %s --> %s\n", ids[r.Parent], ids[r.Child])
		}
	}

	for _, name := range slices.Sorted(maps.Keys(d.StyleClasses)) {
		styles := d.StyleClasses[name].Styles
		pairs := make([]string, 0, len(styles))
		for _, k := range slices.Sorted(maps.Keys(styles)) {
			pairs = append(pairs, k+":"+styles[k])
		}
		fmt.Fprintf(&sb, "    classDef %s %s\n", name, strings.Join(pairs, ","))
	}
	for _, name := range d.Nodes {
		if class := d.ClassOf(name); class != "" {
			fmt.Fprintf(&sb, "    class %s %s\n", ids[name], class)
		}
	}
	return sb.String(), nil
}

// escapeMermaid replaces characters that would end a quoted Mermaid string.
func escapeMermaid(s string) string {
	return strings.NewReplacer(`"`, "'", "|", "/").Replace(s)
}

// FileExtension returns the recommended file extension
func (e *MermaidExporter) FileExtension() string {
	return ".mmd"
}

// FormatName returns the format name
func (e *MermaidExporter) FormatName() string {
	return string(FormatMermaid)
}
