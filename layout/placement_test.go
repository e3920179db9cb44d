package layout

import (
	"testing"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
	"github.com/Chickensoupwithrice/mermaid-ascii/geometry"
)

func TestPlace(t *testing.T) {
	tests := []struct {
		name        string
		orientation diagram.Orientation
		build       func(*diagram.Builder)
		want        map[string]geometry.GridCoord
	}{
		{
			name:        "fan out left-right",
			orientation: diagram.LeftRight,
			build: func(b *diagram.Builder) {
				b.Edge("A", "B", "").Edge("A", "C", "")
			},
			want: map[string]geometry.GridCoord{"A": gc(0, 0), "B": gc(4, 0), "C": gc(4, 4)},
		},
		{
			name:        "fan out top-down",
			orientation: diagram.TopDown,
			build: func(b *diagram.Builder) {
				b.Edge("A", "B", "").Edge("A", "C", "")
			},
			want: map[string]geometry.GridCoord{"A": gc(0, 0), "B": gc(0, 4), "C": gc(4, 4)},
		},
		{
			name:        "chain",
			orientation: diagram.LeftRight,
			build: func(b *diagram.Builder) {
				b.Edge("A", "B", "").Edge("B", "C", "")
			},
			want: map[string]geometry.GridCoord{"A": gc(0, 0), "B": gc(4, 0), "C": gc(8, 0)},
		},
		{
			name:        "two roots share the first level",
			orientation: diagram.LeftRight,
			build: func(b *diagram.Builder) {
				b.Edge("A", "X", "").Edge("B", "Y", "")
			},
			want: map[string]geometry.GridCoord{"A": gc(0, 0), "X": gc(4, 0), "B": gc(0, 4), "Y": gc(4, 4)},
		},
		{
			name:        "forward reference stays a root",
			orientation: diagram.LeftRight,
			build: func(b *diagram.Builder) {
				b.Node("B").Edge("A", "B", "")
			},
			want: map[string]geometry.GridCoord{"B": gc(0, 0), "A": gc(0, 4)},
		},
		{
			name:        "cycle",
			orientation: diagram.TopDown,
			build: func(b *diagram.Builder) {
				b.Edge("A", "B", "").Edge("B", "A", "")
			},
			want: map[string]geometry.GridCoord{"A": gc(0, 0), "B": gc(0, 4)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := diagram.NewBuilder(tt.orientation)
			tt.build(b)
			g, err := NewGraph(b.Diagram(), diagram.DefaultOptions())
			if err != nil {
				t.Fatalf("NewGraph failed: %v", err)
			}
			if err := g.place(); err != nil {
				t.Fatalf("place failed: %v", err)
			}
			for name, want := range tt.want {
				if got := *node(t, g, name).Grid; got != want {
					t.Errorf("%s at %v, want %v", name, got, want)
				}
			}
			checkReservations(t, g)
		})
	}
}

// checkReservations verifies every node owns exactly its 3x3 block.
func checkReservations(t *testing.T, g *Graph) {
	t.Helper()
	owned := 0
	for _, n := range g.Nodes() {
		for dx := 0; dx < 3; dx++ {
			for dy := 0; dy < 3; dy++ {
				c := gc(n.Grid.X+dx, n.Grid.Y+dy)
				if g.OccupiedBy(c) != n {
					t.Errorf("cell %v of %s owned by %v", c, n.Name, g.OccupiedBy(c))
				}
				owned++
			}
		}
	}
	if len(g.occupied) != owned {
		t.Errorf("occupancy has %d cells, want %d", len(g.occupied), owned)
	}
}

func TestReserve_MovesPastCollisions(t *testing.T) {
	for _, o := range []diagram.Orientation{diagram.LeftRight, diagram.TopDown} {
		t.Run(string(o), func(t *testing.T) {
			g, err := NewGraph(diagram.NewBuilder(o).Node("A").Node("B").Node("C").Diagram(), diagram.DefaultOptions())
			if err != nil {
				t.Fatalf("NewGraph failed: %v", err)
			}
			a, b, c := node(t, g, "A"), node(t, g, "B"), node(t, g, "C")

			if got := g.reserve(a, gc(0, 0)); got != gc(0, 0) {
				t.Fatalf("first reservation at %v", got)
			}
			if got, want := g.reserve(b, gc(0, 0)), g.at(0, 4); got != want {
				t.Errorf("second reservation at %v, want %v", got, want)
			}
			if got, want := g.reserve(c, gc(0, 0)), g.at(0, 8); got != want {
				t.Errorf("third reservation at %v, want %v", got, want)
			}
		})
	}
}

func TestRoots(t *testing.T) {
	b := diagram.NewBuilder(diagram.LeftRight).
		Edge("A", "B", "").
		Node("C").
		Edge("D", "C", "")
	g, err := NewGraph(b.Diagram(), diagram.DefaultOptions())
	if err != nil {
		t.Fatalf("NewGraph failed: %v", err)
	}
	var names []string
	for _, r := range g.roots() {
		names = append(names, r.Name)
	}
	// C is declared before D names it as a child.
	want := []string{"A", "C", "D"}
	if len(names) != len(want) {
		t.Fatalf("roots = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("roots = %v, want %v", names, want)
			break
		}
	}
}
