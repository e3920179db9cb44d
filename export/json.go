package export

import (
	"encoding/json"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
)

// JSONExporter exports diagrams to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a diagram to JSON
func (e *JSONExporter) Export(d *diagram.Diagram) (string, error) {
	if err := checkDiagram(d); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FileExtension returns the file extension for JSON
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// FormatName returns the format name
func (e *JSONExporter) FormatName() string {
	return string(FormatJSON)
}
