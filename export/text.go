package export

import (
	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
	"github.com/Chickensoupwithrice/mermaid-ascii/render"
)

// TextExporter renders diagrams as box-drawing text.
type TextExporter struct {
	opts diagram.Options
}

// NewTextExporter creates a text exporter rendering with opts.
func NewTextExporter(opts diagram.Options) *TextExporter {
	return &TextExporter{opts: opts}
}

// Export renders the diagram.
func (e *TextExporter) Export(d *diagram.Diagram) (string, error) {
	return render.Render(d, e.opts)
}

// FileExtension returns the recommended file extension
func (e *TextExporter) FileExtension() string {
	return ".txt"
}

// FormatName returns the format name
func (e *TextExporter) FormatName() string {
	return string(FormatText)
}
