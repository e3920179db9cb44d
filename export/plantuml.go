package export

import (
	"fmt"
	"strings"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
)

// PlantUMLExporter exports diagrams to PlantUML syntax
type PlantUMLExporter struct{}

// NewPlantUMLExporter creates a new PlantUML exporter
func NewPlantUMLExporter() *PlantUMLExporter {
	return &PlantUMLExporter{}
}

// Export converts the diagram to a PlantUML component diagram of rectangles.
func (e *PlantUMLExporter) Export(d *diagram.Diagram) (string, error) {
	if err := checkDiagram(d); err != nil {
		return "", err
	}
	ids := nodeIDs(d)

	var sb strings.Builder
	sb.WriteString("@startuml\n")
	if orientation(d) == diagram.LeftRight {
		sb.WriteString("left to right direction\n")
	} else {
		sb.WriteString("top to bottom direction\n")
	}

	for _, name := range d.Nodes {
		fmt.Fprintf(&sb, "rectangle \"%s\" as %s\n", strings.ReplaceAll(name, `"`, "'"), ids[name])
	}
	for _, r := range d.Records() {
		if r.Label != "" {
			fmt.Fprintf(&sb, "%s --> %s : %s\n", ids[r.Parent], ids[r.Child], r.Label)
		} else {
			fmt.Fprintf(&sb, "%s --> %s\n", ids[r.Parent], ids[r.Child])
		}
	}
	sb.WriteString("@enduml\n")
	return sb.String(), nil
}

// FileExtension returns the recommended file extension
func (e *PlantUMLExporter) FileExtension() string {
	return ".puml"
}

// FormatName returns the format name
func (e *PlantUMLExporter) FormatName() string {
	return string(FormatPlantUML)
}
