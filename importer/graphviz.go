package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
)

var (
	dotDetect   = regexp.MustCompile(`(?m)^\s*(?:strict\s+)?(?:di)?graph\b[^{\n]*\{`)
	dotHeader   = regexp.MustCompile(`^(?:strict\s+)?(digraph|graph)(?:\s+("[^"]*"|\w+))?$`)
	dotSubgraph = regexp.MustCompile(`^(?:subgraph(?:\s+("[^"]*"|\w+))?)?$`)
	dotAssign   = regexp.MustCompile(`^(\w+)\s*=\s*("[^"]*"|\S+)$`)
	dotAttrList = regexp.MustCompile(`\[([^\]]*)\]\s*$`)
	dotPair     = regexp.MustCompile(`(\w+)\s*=\s*("(?:[^"\\]|\\.)*"|[^,;\s\]]+)`)
	dotID       = regexp.MustCompile(`^("(?:[^"\\]|\\.)*"|[\w.]+)$`)
	dotComment  = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// GraphvizImporter imports Graphviz DOT graphs. Subgraphs are flattened into the
// enclosing graph and node or edge default attributes are ignored.
type GraphvizImporter struct{}

// NewGraphvizImporter creates a new Graphviz importer
func NewGraphvizImporter() *GraphvizImporter {
	return &GraphvizImporter{}
}

// CanImport checks if the content is a DOT graph
func (g *GraphvizImporter) CanImport(content string) bool {
	return dotDetect.MatchString(content)
}

// FormatName returns the format name
func (g *GraphvizImporter) FormatName() string {
	return "dot"
}

// FileExtensions returns common file extensions
func (g *GraphvizImporter) FileExtensions() []string {
	return []string{".dot", ".gv"}
}

// dotStmt is one statement and the delimiter that ended it.
type dotStmt struct {
	line  int
	text  string
	delim rune
}

// scanDOT splits content into statements at ';', '{', '}' and newlines outside
// quoted strings and attribute lists. Comments are dropped.
func scanDOT(content string) []dotStmt {
	content = dotComment.ReplaceAllStringFunc(content, func(c string) string {
		return strings.Repeat("\n", strings.Count(c, "\n"))
	})

	var (
		out     []dotStmt
		buf     strings.Builder
		line    = 1
		start   = 1
		quoted  bool
		bracket int
		comment bool
	)
	emit := func(delim rune) {
		if text := strings.TrimSpace(buf.String()); text != "" || delim == '{' || delim == '}' {
			out = append(out, dotStmt{line: start, text: text, delim: delim})
		}
		buf.Reset()
		start = line
	}
	prev := rune(0)
	for _, r := range content {
		switch {
		case comment:
			if r == '\n' {
				comment = false
				emit('\n')
				line++
				start = line
			}
			prev = r
			continue
		case quoted:
			if r == '"' && prev != '\\' {
				quoted = false
			}
		case r == '"':
			quoted = true
		case r == '[':
			bracket++
		case r == ']':
			bracket--
		case bracket > 0:
		case r == '#' && strings.TrimSpace(buf.String()) == "",
			r == '/' && prev == '/':
			comment = true
			if r == '/' {
				s := buf.String()
				buf.Reset()
				buf.WriteString(s[:len(s)-1])
			}
			prev = r
			continue
		case r == ';' || r == '{' || r == '}':
			emit(r)
			prev = r
			continue
		}
		if r == '\n' {
			if !quoted && bracket == 0 {
				emit('\n')
				line++
				start = line
				prev = r
				continue
			}
			line++
		}
		buf.WriteRune(r)
		prev = r
	}
	emit(0)
	return out
}

// Import converts a DOT graph into a diagram.
func (g *GraphvizImporter) Import(content string) (*diagram.Diagram, error) {
	var (
		out    *graph
		header string
		depth  int
		closed bool
		edgeOp = "->"
		last   = 1
	)
	fail := func(line int, format string, args ...any) error {
		return &SyntaxError{Format: g.FormatName(), Line: line, Msg: fmt.Sprintf(format, args...)}
	}

	for _, s := range scanDOT(content) {
		last = s.line
		if closed {
			if s.text != "" {
				return nil, fail(s.line, "unexpected %q after the closing brace", s.text)
			}
			continue
		}
		if depth == 0 {
			if s.text != "" {
				match := dotHeader.FindStringSubmatch(s.text)
				if match == nil || header != "" {
					return nil, fail(s.line, "expected digraph header, got %q", s.text)
				}
				header = match[1]
			}
			if header == "" || s.delim == ';' || s.delim == '}' {
				return nil, fail(s.line, "expected digraph header, got %q", s.text)
			}
			if s.delim == '{' {
				if header == "graph" {
					edgeOp = "--"
				}
				out = newGraph(diagram.TopDown)
				depth = 1
			}
			continue
		}

		switch s.delim {
		case '{':
			if !dotSubgraph.MatchString(s.text) {
				return nil, fail(s.line, "unexpected block %q", s.text)
			}
			depth++
			continue
		case '}':
			if s.text != "" {
				if err := g.statement(out, s.text, edgeOp); err != nil {
					return nil, &SyntaxError{Format: g.FormatName(), Line: s.line, Msg: err.Error(), Err: err}
				}
			}
			depth--
			closed = depth == 0
			continue
		}
		if err := g.statement(out, s.text, edgeOp); err != nil {
			return nil, &SyntaxError{Format: g.FormatName(), Line: s.line, Msg: err.Error(), Err: err}
		}
	}

	if out == nil {
		return nil, fail(1, "missing digraph header")
	}
	if !closed {
		return nil, fail(last, "unclosed brace")
	}
	return out.Diagram(), nil
}

func (g *GraphvizImporter) statement(out *graph, stmt, edgeOp string) error {
	var attrs map[string]string
	if loc := dotAttrList.FindStringSubmatchIndex(stmt); loc != nil {
		attrs = parseDOTAttrs(stmt[loc[2]:loc[3]])
		stmt = strings.TrimSpace(stmt[:loc[0]])
	}

	if match := dotAssign.FindStringSubmatch(stmt); match != nil {
		return g.assign(out, match[1], unquote(match[2]))
	}
	switch stmt {
	case "graph":
		for k, v := range attrs {
			if err := g.assign(out, k, v); err != nil {
				return err
			}
		}
		return nil
	case "node", "edge":
		return nil
	}

	parts := strings.Split(stmt, edgeOp)
	ids := make([]string, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if !dotID.MatchString(p) {
			return fmt.Errorf("invalid node id %q", p)
		}
		ids[i] = unescapeDOT(unquote(p))
	}

	if len(ids) == 1 {
		out.declare(ids[0], attrs["label"])
		return nil
	}
	for i := 1; i < len(ids); i++ {
		out.Edge(out.declare(ids[i-1], ""), out.declare(ids[i], ""), attrs["label"])
	}
	return nil
}

// assign applies a graph attribute. Only rankdir affects the diagram.
func (g *GraphvizImporter) assign(out *graph, key, value string) error {
	if key != "rankdir" {
		return nil
	}
	o, err := diagram.ParseOrientation(value)
	if err != nil {
		return fmt.Errorf("unsupported rankdir %q: %w", value, err)
	}
	out.SetOrientation(o)
	return nil
}

func parseDOTAttrs(list string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range dotPair.FindAllStringSubmatch(list, -1) {
		attrs[m[1]] = unescapeDOT(unquote(m[2]))
	}
	return attrs
}

func unescapeDOT(s string) string {
	return strings.NewReplacer(`\"`, `"`, `\n`, " ", `\\`, `\`).Replace(s)
}
