// Package importer parses textual graph descriptions into diagrams.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
)

// ErrUnknownFormat is returned when no importer matches the input.
var ErrUnknownFormat = errors.New("unknown input format")

// Importer interface defines methods for importing diagrams from various formats
type Importer interface {
	// CanImport checks if the given content can be imported by this importer
	CanImport(content string) bool

	// Import converts the input content into a diagram
	Import(content string) (*diagram.Diagram, error)

	// FormatName returns the short name of the format
	FormatName() string

	// FileExtensions returns common file extensions for this format
	FileExtensions() []string
}

// SyntaxError reports malformed input at a 1-based line number.
type SyntaxError struct {
	Format string
	Line   int
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: line %d: %s", e.Format, e.Line, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Registry manages available importers
type Registry struct {
	importers []Importer
}

// NewRegistry creates a registry holding every built-in importer. Detection tries
// them in this order.
func NewRegistry() *Registry {
	return &Registry{
		importers: []Importer{
			NewMermaidImporter(),
			NewGraphvizImporter(),
			NewPlantUMLImporter(),
			NewD2Importer(),
		},
	}
}

// Register adds a new importer to the registry
func (r *Registry) Register(imp Importer) {
	r.importers = append(r.importers, imp)
}

// Detect picks the importer for content. A known file extension wins over sniffing
// the content; filename may be empty.
func (r *Registry) Detect(content, filename string) (Importer, error) {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		for _, imp := range r.importers {
			if slices.Contains(imp.FileExtensions(), ext) {
				return imp, nil
			}
		}
	}
	for _, imp := range r.importers {
		if imp.CanImport(content) {
			return imp, nil
		}
	}
	return nil, ErrUnknownFormat
}

// Import detects the format of content and imports it.
func (r *Registry) Import(content, filename string) (*diagram.Diagram, error) {
	imp, err := r.Detect(content, filename)
	if err != nil {
		return nil, err
	}
	return imp.Import(content)
}

// ImportWithFormat imports content using a named format.
func (r *Registry) ImportWithFormat(content, format string) (*diagram.Diagram, error) {
	format = strings.ToLower(format)
	for _, imp := range r.importers {
		if imp.FormatName() == format {
			return imp.Import(content)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// Formats returns the names of the registered formats.
func (r *Registry) Formats() []string {
	formats := make([]string, len(r.importers))
	for i, imp := range r.importers {
		formats[i] = imp.FormatName()
	}
	return formats
}

// Import detects the format of content using the built-in importers and imports it.
func Import(content, filename string) (*diagram.Diagram, error) {
	return NewRegistry().Import(content, filename)
}

// graph wraps a diagram builder with display-name aliases, so that an identifier
// declared with a label can be referred to by its identifier afterwards.
type graph struct {
	*diagram.Builder
	alias map[string]string
}

func newGraph(o diagram.Orientation) *graph {
	return &graph{Builder: diagram.NewBuilder(o), alias: make(map[string]string)}
}

// name resolves an identifier to its display name.
func (g *graph) name(id string) string {
	if n, ok := g.alias[id]; ok {
		return n
	}
	return id
}

// declare records a display name for id when label is not empty and returns the name
// the node is known by.
func (g *graph) declare(id, label string) string {
	if label != "" {
		g.alias[id] = label
	}
	name := g.name(id)
	g.Node(name)
	return name
}

// unquote strips one level of matching double quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// lines splits content into trimmed lines paired with their 1-based numbers,
// skipping blank lines and lines starting with any of the comment prefixes.
func lines(content string, comments ...string) []numbered {
	var out []numbered
	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		skip := false
		for _, c := range comments {
			if strings.HasPrefix(line, c) {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, numbered{n: i + 1, text: line})
		}
	}
	return out
}

type numbered struct {
	n    int
	text string
}
