package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
)

const plantID = `("[^"]+"|\[[^\]]+\]|\([^)]+\)|\w+)`

var (
	plantEdge = regexp.MustCompile(`^` + plantID + `\s*(<)?[-.]+(?:\[[^\]]*\]|up|down|left|right|u|d|l|r)?[-.]*(>)?\s*` + plantID + `(?:\s*:\s*(.*))?$`)
	plantDecl = regexp.MustCompile(`^(?:node|component|rectangle|actor|usecase|database|queue|cloud|agent|artifact|card|folder|frame|package|storage|entity|boundary|control|collections|participant|state|object)\s+` + plantID + `(?:\s+as\s+(\w+))?`)
	plantSkip = regexp.MustCompile(`^(?:skinparam|title|hide|show|scale|caption|header|footer|legend|end legend|!|note\s)`)
)

// PlantUMLImporter imports PlantUML component and use case diagrams. Every element
// keyword becomes a plain node.
type PlantUMLImporter struct{}

// NewPlantUMLImporter creates a new PlantUML importer
func NewPlantUMLImporter() *PlantUMLImporter {
	return &PlantUMLImporter{}
}

// CanImport checks if the content is a PlantUML diagram
func (p *PlantUMLImporter) CanImport(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), "@startuml")
}

// FormatName returns the format name
func (p *PlantUMLImporter) FormatName() string {
	return "plantuml"
}

// FileExtensions returns common file extensions
func (p *PlantUMLImporter) FileExtensions() []string {
	return []string{".puml", ".plantuml", ".pu"}
}

// Import converts PlantUML content into a diagram.
func (p *PlantUMLImporter) Import(content string) (*diagram.Diagram, error) {
	g := newGraph(diagram.TopDown)
	started := false
	for _, l := range lines(content, "'") {
		switch {
		case strings.HasPrefix(l.text, "@startuml"):
			started = true
			continue
		case l.text == "@enduml":
			return g.Diagram(), nil
		case !started:
			return nil, &SyntaxError{Format: p.FormatName(), Line: l.n, Msg: "expected @startuml"}
		}
		if err := p.statement(g, l.text); err != nil {
			return nil, &SyntaxError{Format: p.FormatName(), Line: l.n, Msg: err.Error(), Err: err}
		}
	}
	if !started {
		return nil, &SyntaxError{Format: p.FormatName(), Line: 1, Msg: "expected @startuml"}
	}
	return g.Diagram(), nil
}

func (p *PlantUMLImporter) statement(g *graph, stmt string) error {
	switch {
	case stmt == "left to right direction":
		g.SetOrientation(diagram.LeftRight)
		return nil
	case stmt == "top to bottom direction":
		g.SetOrientation(diagram.TopDown)
		return nil
	case plantSkip.MatchString(stmt):
		return nil
	}

	if match := plantDecl.FindStringSubmatch(stmt); match != nil {
		label := plantName(match[1])
		if match[2] == "" {
			g.declare(label, "")
		} else {
			g.declare(match[2], label)
		}
		return nil
	}
	if match := plantEdge.FindStringSubmatch(stmt); match != nil {
		from := g.declare(plantName(match[1]), "")
		to := g.declare(plantName(match[4]), "")
		label := strings.TrimSpace(match[5])
		if match[2] == "<" && match[3] == "" {
			from, to = to, from
		}
		g.Edge(from, to, label)
		return nil
	}
	return fmt.Errorf("unsupported statement %q", stmt)
}

// plantName strips quotes, component brackets or use case parentheses.
func plantName(id string) string {
	if len(id) >= 2 {
		switch id[0] {
		case '[', '(':
			return strings.TrimSpace(id[1 : len(id)-1])
		}
	}
	return unquote(id)
}
