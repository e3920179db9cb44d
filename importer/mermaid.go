package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
)

var (
	mermaidHeader   = regexp.MustCompile(`^(graph|flowchart)(?:\s+(\w+))?$`)
	mermaidPadding  = regexp.MustCompile(`^padding([XY])\s*=\s*(\d+)$`)
	mermaidClassDef = regexp.MustCompile(`^classDef\s+(\S+)\s+(.+)$`)
	mermaidClass    = regexp.MustCompile(`^class\s+(\S+)\s+(\S+)$`)
	mermaidIgnored  = regexp.MustCompile(`^(style|linkStyle|click)\s`)

	// mermaidArrow matches one link between node groups. Group 1 holds an
	// "-- label -->" label, group 2 a "-->|label|" label.
	mermaidArrow = regexp.MustCompile(`\s*(?:--\s*([^\s|>-][^>]*?)\s*-->|(?:-->|==>|-\.->|---)\s*\|([^|]*)\||-->|==>|-\.->|---)\s*`)

	// mermaidNode matches a node reference: an identifier, an optional shape holding
	// its display text and an optional ":::class" suffix.
	mermaidNode = regexp.MustCompile(`^([^\s\[\](){}>&:|]+)\s*(?:[\[({>]+([^\])}]*)[\])}]+)?\s*(?::::([\w-]+))?$`)
)

// MermaidImporter imports Mermaid flowcharts.
//
// A "paddingX=N" or "paddingY=N" line before the header is recorded as a diagram hint.
// Node shapes are accepted and their text becomes the node's name; later references
// to the identifier resolve to that name.
type MermaidImporter struct{}

// NewMermaidImporter creates a new Mermaid importer
func NewMermaidImporter() *MermaidImporter {
	return &MermaidImporter{}
}

// CanImport reports whether the first statement is a flowchart header.
func (m *MermaidImporter) CanImport(content string) bool {
	for _, l := range lines(content, "%%") {
		if mermaidPadding.MatchString(l.text) {
			continue
		}
		return mermaidHeader.MatchString(strings.TrimSuffix(l.text, ";"))
	}
	return false
}

// FormatName returns the format name
func (m *MermaidImporter) FormatName() string {
	return "mermaid"
}

// FileExtensions returns common file extensions
func (m *MermaidImporter) FileExtensions() []string {
	return []string{".mmd", ".mermaid"}
}

// Import converts a Mermaid flowchart into a diagram.
func (m *MermaidImporter) Import(content string) (*diagram.Diagram, error) {
	var (
		g      *graph
		hints  = make(map[string]string)
		header bool
	)
	for _, l := range lines(content, "%%") {
		if !header {
			if match := mermaidPadding.FindStringSubmatch(l.text); match != nil {
				key := diagram.HintPaddingX
				if match[1] == "Y" {
					key = diagram.HintPaddingY
				}
				hints[key] = match[2]
				continue
			}
			o, err := m.header(l)
			if err != nil {
				return nil, err
			}
			g = newGraph(o)
			for k, v := range hints {
				g.Hint(k, v)
			}
			header = true
			continue
		}

		for _, stmt := range strings.Split(l.text, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if err := m.statement(g, stmt); err != nil {
				return nil, &SyntaxError{Format: m.FormatName(), Line: l.n, Msg: err.Error(), Err: err}
			}
		}
	}
	if !header {
		return nil, &SyntaxError{Format: m.FormatName(), Line: 1, Msg: "missing graph or flowchart header"}
	}
	return g.Diagram(), nil
}

func (m *MermaidImporter) header(l numbered) (diagram.Orientation, error) {
	match := mermaidHeader.FindStringSubmatch(strings.TrimSuffix(l.text, ";"))
	if match == nil {
		return "", &SyntaxError{Format: m.FormatName(), Line: l.n, Msg: fmt.Sprintf("expected graph or flowchart header, got %q", l.text)}
	}
	if match[2] == "" {
		return diagram.TopDown, nil
	}
	o, err := diagram.ParseOrientation(match[2])
	if err != nil {
		return "", &SyntaxError{Format: m.FormatName(), Line: l.n, Msg: fmt.Sprintf("unsupported direction %q", match[2]), Err: err}
	}
	return o, nil
}

func (m *MermaidImporter) statement(g *graph, stmt string) error {
	switch {
	case mermaidPadding.MatchString(stmt):
		return fmt.Errorf("padding directive %q must precede the header", stmt)
	case stmt == "end" || strings.HasPrefix(stmt, "subgraph"):
		return fmt.Errorf("subgraphs are not supported")
	case mermaidIgnored.MatchString(stmt):
		return nil
	}
	if match := mermaidClassDef.FindStringSubmatch(stmt); match != nil {
		styles, err := parseStyles(match[2])
		if err != nil {
			return err
		}
		g.ClassDef(match[1], styles)
		return nil
	}
	if match := mermaidClass.FindStringSubmatch(stmt); match != nil {
		for _, id := range strings.Split(match[1], ",") {
			if id = strings.TrimSpace(id); id != "" {
				g.Class(g.declare(id, ""), match[2])
			}
		}
		return nil
	}

	arrows := mermaidArrow.FindAllStringSubmatchIndex(stmt, -1)
	groups := make([][]string, 0, len(arrows)+1)
	start := 0
	for i := 0; i <= len(arrows); i++ {
		end := len(stmt)
		if i < len(arrows) {
			end = arrows[i][0]
		}
		names, err := m.group(g, stmt[start:end])
		if err != nil {
			return err
		}
		groups = append(groups, names)
		if i < len(arrows) {
			start = arrows[i][1]
		}
	}

	for i, a := range arrows {
		label := ""
		for _, sub := range []int{2, 4} {
			if a[sub] >= 0 {
				label = strings.TrimSpace(unquote(stmt[a[sub]:a[sub+1]]))
			}
		}
		for _, parent := range groups[i] {
			for _, child := range groups[i+1] {
				g.Edge(parent, child, label)
			}
		}
	}
	return nil
}

// group declares every node of an "A & B" group and returns their names.
func (m *MermaidImporter) group(g *graph, text string) ([]string, error) {
	var names []string
	for _, ref := range strings.Split(text, "&") {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			return nil, fmt.Errorf("missing node in %q", strings.TrimSpace(text))
		}
		match := mermaidNode.FindStringSubmatch(ref)
		if match == nil {
			return nil, fmt.Errorf("invalid node %q", ref)
		}
		name := g.declare(match[1], unquote(match[2]))
		if match[3] != "" {
			g.Class(name, match[3])
		}
		names = append(names, name)
	}
	return names, nil
}

// parseStyles parses "color:#f00,stroke-width:2px" into a property map.
func parseStyles(s string) (map[string]string, error) {
	styles := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, ":")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("invalid style %q", strings.TrimSpace(pair))
		}
		styles[k] = v
	}
	return styles, nil
}
