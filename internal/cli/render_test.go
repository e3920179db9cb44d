package cli

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/cobra"

	"github.com/Chickensoupwithrice/mermaid-ascii/config"
	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
	"github.com/Chickensoupwithrice/mermaid-ascii/export"
	"github.com/Chickensoupwithrice/mermaid-ascii/importer"
	"github.com/Chickensoupwithrice/mermaid-ascii/markdown"
)

const twoNodes = "graph LR\nA --> B\n"

var twoNodesASCII = strings.Join([]string{
	"+---+     +---+",
	"|   |     |   |",
	"| A |---->| B |",
	"|   |     |   |",
	"+---+     +---+",
}, "\n") + "\n"

// execute runs the CLI with stdin and args, isolated from any user config file.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"stdin", twoNodes, []string{"render", "--ascii"}, twoNodesASCII},
		{"dash", twoNodes, []string{"render", "--ascii", "-"}, twoNodesASCII},
		{"input format", "digraph G {\n  rankdir=LR;\n  A -> B;\n}\n", []string{"render", "--ascii", "--input-format", "dot"}, twoNodesASCII},
		{"mermaid export", twoNodes, []string{"render", "-f", "mermaid"}, "graph LR\n    A\n    B\n    A --> B\n"},
		{"d2 export", twoNodes, []string{"render", "--format", "d2"}, "direction: right\n\nA\nB\n\nA -> B\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestRender_File(t *testing.T) {
	in := writeFile(t, "flow.mmd", twoNodes)
	got, _, err := execute(t, "", "render", "--ascii", in)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got != twoNodesASCII {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, twoNodesASCII)
	}
}

func TestRender_Markdown(t *testing.T) {
	doc := "# Flow\n\n```dot\ndigraph {\n  a -> b\n}\n```\n\n```mermaid\n" + twoNodes + "```\n"
	in := writeFile(t, "README.md", doc)

	got, _, err := execute(t, "", "render", "--ascii", "--block", "2", in)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got != twoNodesASCII {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, twoNodesASCII)
	}

	if _, _, err := execute(t, "", "render", "--block", "3", in); err == nil {
		t.Error("out of range block: want an error")
	}
	empty := writeFile(t, "empty.md", "# Nothing\n")
	if _, _, err := execute(t, "", "render", empty); !errors.Is(err, markdown.ErrNoBlocks) {
		t.Errorf("error = %v, want ErrNoBlocks", err)
	}
}

func TestRender_ConfigFile(t *testing.T) {
	cfg := writeFile(t, "config.toml", "ascii = true\n")
	got, _, err := execute(t, twoNodes, "render", "--config", cfg)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got != twoNodesASCII {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, twoNodesASCII)
	}
}

func TestRender_OutputFiles(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "flow.txt")
	img := filepath.Join(dir, "flow.png")

	stdout, stderr, err := execute(t, twoNodes, "render", "--ascii", "-o", out, "--png", img)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want nothing", stdout)
	}
	for _, path := range []string{out, img} {
		if !strings.Contains(stderr, path) {
			t.Errorf("stderr does not mention %s:\n%s", path, stderr)
		}
	}

	text, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(text) != twoNodesASCII {
		t.Errorf("file content mismatch\ngot:\n%s\nwant:\n%s", text, twoNodesASCII)
	}

	f, err := os.Open(img)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr error
	}{
		{"unknown format", twoNodes, []string{"render", "-f", "svg"}, export.ErrUnknownFormat},
		{"unknown input format", twoNodes, []string{"render", "--input-format", "svg"}, importer.ErrUnknownFormat},
		{"bad orientation", twoNodes, []string{"render", "--orientation", "RL"}, diagram.ErrInvalidOrientation},
		{"negative padding", twoNodes, []string{"render", "--padding-y=-1"}, diagram.ErrInvalidOption},
		{"no nodes", "graph LR\n", []string{"render"}, diagram.ErrEmptyDiagram},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.stdin, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRender_SyntaxError(t *testing.T) {
	_, _, err := execute(t, "graph LR\nA --> B\nsubgraph one\n", "render")
	var syntaxErr *importer.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("error = %v, want a SyntaxError", err)
	}
	if syntaxErr.Line != 3 {
		t.Errorf("Line = %d, want 3", syntaxErr.Line)
	}
}

func TestResolveOptions(t *testing.T) {
	lr := diagram.NewBuilder(diagram.LeftRight).Edge("A", "B", "").Diagram()
	unoriented := diagram.NewBuilder("").Edge("A", "B", "").Diagram()
	hinted := diagram.NewBuilder(diagram.LeftRight).
		Hint(diagram.HintPaddingX, "7").
		Edge("A", "B", "").
		Diagram()

	configured := config.Default()
	configured.UseASCII = true
	configured.PaddingBetweenColumns = 2
	configured.Orientation = diagram.TopDown
	configured.Color = true

	withPadding := func(x int) diagram.Options {
		o := diagram.DefaultOptions()
		o.PaddingBetweenColumns = x
		return o
	}

	tests := []struct {
		name      string
		cfg       config.Config
		d         *diagram.Diagram
		args      []string
		want      diagram.Options
		wantColor bool
	}{
		{
			name: "defaults",
			cfg:  config.Default(),
			d:    lr,
			want: diagram.DefaultOptions(),
		},
		{
			name: "config file",
			cfg:  configured,
			d:    lr,
			want: diagram.Options{
				UseASCII:              true,
				BorderPadding:         diagram.DefaultBorderPadding,
				PaddingBetweenColumns: 2,
				PaddingBetweenRows:    diagram.DefaultPaddingY,
			},
			wantColor: true,
		},
		{
			name: "config orientation for unoriented input",
			cfg:  configured,
			d:    unoriented,
			want: diagram.Options{
				UseASCII:              true,
				BorderPadding:         diagram.DefaultBorderPadding,
				PaddingBetweenColumns: 2,
				PaddingBetweenRows:    diagram.DefaultPaddingY,
				Orientation:           diagram.TopDown,
			},
			wantColor: true,
		},
		{
			name: "input directive beats config",
			cfg:  config.Config{Options: withPadding(2)},
			d:    hinted,
			want: withPadding(7),
		},
		{
			name: "flags beat input directives",
			cfg:  configured,
			d:    hinted,
			args: []string{"--padding-x", "1", "--orientation", "td", "--ascii=false", "--color=false"},
			want: diagram.Options{
				BorderPadding:         diagram.DefaultBorderPadding,
				PaddingBetweenColumns: 1,
				PaddingBetweenRows:    diagram.DefaultPaddingY,
				Orientation:           diagram.TopDown,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o layoutOpts
			cmd := &cobra.Command{Use: "test"}
			o.addFlags(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags failed: %v", err)
			}
			got, gotColor, err := o.resolve(cmd, tt.cfg, tt.d)
			if err != nil {
				t.Fatalf("resolve failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(diagram.Options{}, "Logger")); diff != "" {
				t.Errorf("options mismatch (-want +got):\n%s", diff)
			}
			if gotColor != tt.wantColor {
				t.Errorf("color = %v, want %v", gotColor, tt.wantColor)
			}
		})
	}
}

func TestClassStyles(t *testing.T) {
	styles := classStyles(map[string]diagram.StyleClass{
		"hot":  {Name: "hot", Styles: map[string]string{"color": "#ff0000", "font-weight": "bold"}},
		"cold": {Name: "cold", Styles: map[string]string{"stroke": "#333"}},
	})
	if !styles["hot"].GetBold() {
		t.Error("hot should be bold")
	}
	if got := styles["hot"].GetForeground(); got != lipgloss.Color("#ff0000") {
		t.Errorf("hot foreground = %v", got)
	}
	if styles["cold"].GetBold() {
		t.Error("cold should not be bold")
	}

	paint := colorize(nil)
	if got := paint("missing", "text"); got != "text" {
		t.Errorf("unknown class changed text to %q", got)
	}
}
