package pathfinding

import (
	"testing"

	"github.com/Chickensoupwithrice/mermaid-ascii/geometry"
	"github.com/google/go-cmp/cmp"
)

func coords(pairs ...int) []geometry.GridCoord {
	out := make([]geometry.GridCoord, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, geometry.GridCoord{X: pairs[i], Y: pairs[i+1]})
	}
	return out
}

func TestSimplifyPath(t *testing.T) {
	tests := []struct {
		name string
		path []geometry.GridCoord
		want []geometry.GridCoord
	}{
		{"empty", nil, nil},
		{"single", coords(1, 1), coords(1, 1)},
		{"two cells", coords(0, 0, 1, 0), coords(0, 0, 1, 0)},
		{"straight run", coords(0, 0, 1, 0, 2, 0, 3, 0), coords(0, 0, 3, 0)},
		{"one corner", coords(0, 0, 1, 0, 2, 0, 2, 1, 2, 2), coords(0, 0, 2, 0, 2, 2)},
		{"staircase", coords(0, 0, 1, 0, 1, 1, 2, 1, 2, 2), coords(0, 0, 1, 0, 1, 1, 2, 1, 2, 2)},
		{"u-turn", coords(0, 0, 0, 1, 1, 1, 2, 1, 2, 0), coords(0, 0, 0, 1, 2, 1, 2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimplifyPath(tt.path)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SimplifyPath mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSimplifyPath_Properties(t *testing.T) {
	free := parseObstacleMap(`
..........
..XXXX....
..X..X....
..X..XXX..
..........`)
	starts := coords(0, 0, 0, 4, 9, 0, 3, 2)
	ends := coords(9, 4, 7, 2, 0, 3, 6, 4)

	for _, start := range starts {
		for _, end := range ends {
			raw, err := FindPath(start, end, free)
			if err != nil {
				continue
			}
			once := SimplifyPath(raw)
			twice := SimplifyPath(once)

			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("%v->%v: simplification not idempotent (-once +twice):\n%s", start, end, diff)
			}
			if len(once) > len(raw) {
				t.Errorf("%v->%v: simplified path grew from %d to %d", start, end, len(raw), len(once))
			}
			if once[0] != raw[0] || once[len(once)-1] != raw[len(raw)-1] {
				t.Errorf("%v->%v: endpoints changed: %v", start, end, once)
			}
			if Length(once) != len(raw) {
				t.Errorf("%v->%v: simplified path covers %d cells, raw has %d", start, end, Length(once), len(raw))
			}
			for i := 2; i < len(once); i++ {
				if geometry.Between(once[i-2], once[i-1]) == geometry.Between(once[i-1], once[i]) {
					t.Errorf("%v->%v: collinear triple at %d: %v", start, end, i, once)
				}
			}
		}
	}
}
