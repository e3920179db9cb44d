package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
)

var (
	d2Detect    = regexp.MustCompile(`(?m)^\s*(?:"[^"]+"|[\w.-]+)\s*(?:<->|->|<-)\s*\S`)
	d2Direction = regexp.MustCompile(`^direction\s*:\s*(\w+)$`)
	d2Arrow     = regexp.MustCompile(`\s*(<->|->|<-|--)\s*`)
	d2ID        = regexp.MustCompile(`^(?:"[^"]*"|[\w .-]+)$`)
)

// D2Importer imports D2 diagram format. Connections, node labels and the top-level
// direction are read. Style blocks are skipped and containers are not supported.
type D2Importer struct{}

// NewD2Importer creates a new D2 importer
func NewD2Importer() *D2Importer {
	return &D2Importer{}
}

// CanImport checks if the content holds a D2 connection.
func (d *D2Importer) CanImport(content string) bool {
	return d2Detect.MatchString(content)
}

// FormatName returns the format name
func (d *D2Importer) FormatName() string {
	return "d2"
}

// FileExtensions returns common file extensions
func (d *D2Importer) FileExtensions() []string {
	return []string{".d2"}
}

// Import converts D2 content into a diagram.
func (d *D2Importer) Import(content string) (*diagram.Diagram, error) {
	g := newGraph(diagram.TopDown)
	depth := 0
	for _, l := range lines(content, "#") {
		text := l.text
		if depth > 0 {
			depth += strings.Count(text, "{") - strings.Count(text, "}")
			continue
		}
		if i := strings.Index(text, "{"); i >= 0 {
			depth = strings.Count(text, "{") - strings.Count(text, "}")
			text = strings.TrimSpace(text[:i])
		}
		for _, stmt := range strings.Split(text, ";") {
			if stmt = strings.TrimSpace(stmt); stmt == "" {
				continue
			}
			if err := d.statement(g, stmt); err != nil {
				return nil, &SyntaxError{Format: d.FormatName(), Line: l.n, Msg: err.Error(), Err: err}
			}
		}
	}
	return g.Diagram(), nil
}

func (d *D2Importer) statement(g *graph, stmt string) error {
	if match := d2Direction.FindStringSubmatch(stmt); match != nil {
		switch match[1] {
		case "right":
			g.SetOrientation(diagram.LeftRight)
		case "down":
			g.SetOrientation(diagram.TopDown)
		default:
			return fmt.Errorf("unsupported direction %q: %w", match[1], diagram.ErrInvalidOrientation)
		}
		return nil
	}

	// The label follows the first colon outside quotes.
	body, label := stmt, ""
	quoted := false
	for i, r := range stmt {
		if r == '"' {
			quoted = !quoted
		}
		if r == ':' && !quoted {
			body, label = strings.TrimSpace(stmt[:i]), unquote(stmt[i+1:])
			break
		}
	}
	if strings.Contains(body, ".") && !strings.ContainsAny(body, `"`) && !d2Arrow.MatchString(body) {
		// Attribute assignment such as "a.shape: circle".
		return nil
	}

	arrows := d2Arrow.FindAllStringSubmatchIndex(body, -1)
	ids := make([]string, 0, len(arrows)+1)
	start := 0
	for i := 0; i <= len(arrows); i++ {
		end := len(body)
		if i < len(arrows) {
			end = arrows[i][0]
		}
		id := strings.TrimSpace(body[start:end])
		if !d2ID.MatchString(id) {
			return fmt.Errorf("invalid node %q", id)
		}
		ids = append(ids, unquote(id))
		if i < len(arrows) {
			start = arrows[i][1]
		}
	}

	if len(ids) == 1 {
		g.declare(ids[0], label)
		return nil
	}
	for i, a := range arrows {
		from, to := g.declare(ids[i], ""), g.declare(ids[i+1], "")
		switch body[a[2]:a[3]] {
		case "<-":
			g.Edge(to, from, label)
		case "<->":
			g.Edge(from, to, label)
			g.Edge(to, from, label)
		default:
			g.Edge(from, to, label)
		}
	}
	return nil
}
