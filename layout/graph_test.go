package layout

import (
	"errors"
	"strings"
	"testing"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
	"github.com/Chickensoupwithrice/mermaid-ascii/geometry"
	"github.com/google/go-cmp/cmp"
)

func gc(x, y int) geometry.GridCoord {
	return geometry.GridCoord{X: x, Y: y}
}

func build(t *testing.T, d *diagram.Diagram, opts diagram.Options) *Graph {
	t.Helper()
	g, err := Build(d, opts)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func node(t *testing.T, g *Graph, name string) *Node {
	t.Helper()
	n, ok := g.Node(name)
	if !ok {
		t.Fatalf("node %q missing", name)
	}
	return n
}

func TestBuild_TwoNodesLeftRight(t *testing.T) {
	d := diagram.NewBuilder(diagram.LeftRight).Edge("A", "B", "").Diagram()
	g := build(t, d, diagram.DefaultOptions())

	a, b := node(t, g, "A"), node(t, g, "B")
	if *a.Grid != gc(0, 0) || *b.Grid != gc(4, 0) {
		t.Errorf("grid positions A=%v B=%v, want (0,0) and (4,0)", *a.Grid, *b.Grid)
	}

	wantCols := []int{1, 3, 1, 5, 1, 3, 1}
	for x, want := range wantCols {
		if got := g.ColumnWidth(x); got != want {
			t.Errorf("column %d width = %d, want %d", x, got, want)
		}
	}

	e := g.Edges()[0]
	if diff := cmp.Diff([]geometry.GridCoord{gc(2, 1), gc(4, 1)}, e.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	if e.StartDir != geometry.Right || e.EndDir != geometry.Left {
		t.Errorf("attachments = %v/%v, want Right/Left", e.StartDir, e.EndDir)
	}

	if a.Canvas != (geometry.CanvasCoord{X: 0, Y: 0}) || b.Canvas != (geometry.CanvasCoord{X: 10, Y: 0}) {
		t.Errorf("canvas positions A=%v B=%v", a.Canvas, b.Canvas)
	}
	if w, h := g.Canvas().Size(); w != 15 || h != 5 {
		t.Errorf("canvas size = %dx%d, want 15x5", w, h)
	}
}

func TestBuild_TwoNodesTopDown(t *testing.T) {
	d := diagram.NewBuilder(diagram.TopDown).Edge("A", "B", "").Diagram()
	g := build(t, d, diagram.DefaultOptions())

	if got := *node(t, g, "B").Grid; got != gc(0, 4) {
		t.Errorf("B at %v, want (0,4)", got)
	}
	e := g.Edges()[0]
	if diff := cmp.Diff([]geometry.GridCoord{gc(1, 2), gc(1, 4)}, e.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	if w, h := g.Canvas().Size(); w != 5 || h != 15 {
		t.Errorf("canvas size = %dx%d, want 5x15", w, h)
	}
}

func TestBuild_OrientationOverride(t *testing.T) {
	d := diagram.NewBuilder(diagram.LeftRight).Edge("A", "B", "").Diagram()
	opts := diagram.DefaultOptions()
	opts.Orientation = diagram.TopDown
	g := build(t, d, opts)
	if g.Orientation() != diagram.TopDown {
		t.Errorf("orientation = %s, want TD", g.Orientation())
	}
	if got := *node(t, g, "B").Grid; got != gc(0, 4) {
		t.Errorf("B at %v, want (0,4)", got)
	}
}

func TestBuild_Errors(t *testing.T) {
	if _, err := Build(diagram.New(diagram.LeftRight), diagram.DefaultOptions()); !errors.Is(err, diagram.ErrEmptyDiagram) {
		t.Errorf("empty diagram: error = %v, want ErrEmptyDiagram", err)
	}

	d := diagram.NewBuilder(diagram.LeftRight).Node("A").Diagram()
	opts := diagram.DefaultOptions()
	opts.PaddingBetweenRows = -1
	if _, err := Build(d, opts); !errors.Is(err, diagram.ErrInvalidOption) {
		t.Errorf("bad options: error = %v, want ErrInvalidOption", err)
	}
}

func TestBuild_DiscoveryOrder(t *testing.T) {
	d := diagram.New(diagram.LeftRight)
	d.Nodes = []string{"A", "A", "C"}
	d.Edges["A"] = []diagram.Record{{Parent: "A", Child: "B"}}
	d.Edges["Z"] = []diagram.Record{{Parent: "Z", Child: "A"}}

	g := build(t, d, diagram.DefaultOptions())
	var names []string
	for _, n := range g.Nodes() {
		names = append(names, n.Name)
		if g.Nodes()[n.Index] != n {
			t.Errorf("node %q has index %d", n.Name, n.Index)
		}
	}
	if diff := cmp.Diff([]string{"A", "B", "C", "Z"}, names); diff != "" {
		t.Errorf("discovery order mismatch (-want +got):\n%s", diff)
	}
	if len(g.Edges()) != 2 {
		t.Errorf("got %d edges, want 2", len(g.Edges()))
	}
}

func TestBuild_StyleClasses(t *testing.T) {
	d := diagram.NewBuilder(diagram.LeftRight).
		Edge("A", "B", "").
		Class("B", "hot").
		ClassDef("hot", map[string]string{"color": "red"}).
		Diagram()
	g := build(t, d, diagram.DefaultOptions())

	b := node(t, g, "B")
	if b.StyleClass != "hot" {
		t.Errorf("StyleClass = %q, want hot", b.StyleClass)
	}
	if _, ok := g.StyleClasses()["hot"]; !ok {
		t.Errorf("style class not carried to graph")
	}
	label := geometry.CanvasCoord{X: 2, Y: 2}
	if got := b.Box.Class(label); got != "hot" {
		t.Errorf("box label class = %q, want hot", got)
	}
}

func TestGridToCanvas_PanicsBeforeSizing(t *testing.T) {
	d := diagram.NewBuilder(diagram.LeftRight).Edge("A", "B", "").Diagram()
	g, err := NewGraph(d, diagram.DefaultOptions())
	if err != nil {
		t.Fatalf("NewGraph failed: %v", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("GridToCanvas did not panic")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "GridToCanvas") {
			t.Errorf("panic value = %v", r)
		}
	}()
	g.GridToCanvas(gc(0, 0))
}

func TestLayout_RunsOnce(t *testing.T) {
	d := diagram.NewBuilder(diagram.LeftRight).Node("A").Diagram()
	g := build(t, d, diagram.DefaultOptions())
	if err := g.Layout(); !errors.Is(err, ErrLaidOut) {
		t.Errorf("second Layout error = %v, want ErrLaidOut", err)
	}
	if err := g.place(); !errors.Is(err, ErrLaidOut) {
		t.Errorf("second place error = %v, want ErrLaidOut", err)
	}
}

func TestBoxFragment(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		padding int
		ascii   bool
		want    string
	}{
		{
			name:    "unicode",
			label:   "A",
			padding: 1,
			want:    "┌───┐\n│   │\n│ A │\n│   │\n└───┘",
		},
		{
			name:    "ascii",
			label:   "Hi",
			padding: 1,
			ascii:   true,
			want:    "+----+\n|    |\n| Hi |\n|    |\n+----+",
		},
		{
			name:    "no padding",
			label:   "abc",
			padding: 0,
			want:    "┌───┐\n│abc│\n└───┘",
		},
		{
			name:    "wide padding",
			label:   "x",
			padding: 2,
			want:    "┌─────┐\n│     │\n│     │\n│  x  │\n│     │\n│     │\n└─────┘",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := diagram.DefaultOptions()
			opts.BorderPadding = tt.padding
			opts.UseASCII = tt.ascii
			g := build(t, diagram.NewBuilder(diagram.LeftRight).Node(tt.label).Diagram(), opts)
			if got := node(t, g, tt.label).Box.String(); got != tt.want {
				t.Errorf("box:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}
