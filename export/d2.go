package export

import (
	"fmt"
	"strings"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
)

// D2Exporter exports diagrams to D2 syntax
type D2Exporter struct{}

// NewD2Exporter creates a new D2 exporter
func NewD2Exporter() *D2Exporter {
	return &D2Exporter{}
}

// Export converts the diagram to D2 syntax. Style classes are not exported.
func (e *D2Exporter) Export(d *diagram.Diagram) (string, error) {
	if err := checkDiagram(d); err != nil {
		return "", err
	}

	var sb strings.Builder
	direction := "down"
	if orientation(d) == diagram.LeftRight {
		direction = "right"
	}
	fmt.Fprintf(&sb, "direction: %s\n\n", direction)

	for _, name := range d.Nodes {
		sb.WriteString(e.nodeID(name) + "\n")
	}

	records := d.Records()
	if len(records) > 0 {
		sb.WriteString("\n")
	}
	for _, r := range records {
		if r.Label != "" {
			fmt.Fprintf(&sb, "%s -> %s: %s\n", e.nodeID(r.Parent), e.nodeID(r.Child), strings.ReplaceAll(r.Label, "\n", " "))
		} else {
			fmt.Fprintf(&sb, "%s -> %s\n", e.nodeID(r.Parent), e.nodeID(r.Child))
		}
	}
	return sb.String(), nil
}

// nodeID quotes names that are not plain words
func (e *D2Exporter) nodeID(name string) string {
	if plainID.MatchString(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, "'") + `"`
}

// FileExtension returns the recommended file extension
func (e *D2Exporter) FileExtension() string {
	return ".d2"
}

// FormatName returns the format name
func (e *D2Exporter) FormatName() string {
	return string(FormatD2)
}
