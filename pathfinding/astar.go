// Package pathfinding routes edges across the layout grid.
package pathfinding

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/Chickensoupwithrice/mermaid-ascii/geometry"
)

// ErrNoPath is returned when the search frontier empties before reaching the goal.
var ErrNoPath = errors.New("no path found")

// DefaultMaxExplored caps the number of cells expanded by a single search.
const DefaultMaxExplored = 200000

// CellFree reports whether a grid cell may be traversed.
type CellFree func(geometry.GridCoord) bool

// searchNode is a frontier entry of the best-first search.
type searchNode struct {
	coord    geometry.GridCoord
	priority int
	seq      int // insertion order, keeps equal priorities FIFO
	index    int // index in the heap
}

// frontier is a priority queue ordered by priority, then insertion order.
type frontier []*searchNode

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}

func (f *frontier) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*f)
	*f = append(*f, n)
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // avoid memory leak
	node.index = -1
	*f = old[:n-1]
	return node
}

// moves are the four axis-aligned steps, tried in this order.
var moves = []geometry.Direction{geometry.Right, geometry.Left, geometry.Down, geometry.Up}

// Finder runs grid searches with a bounded number of expansions.
type Finder struct {
	maxExplored int
}

// NewFinder creates a Finder with the default expansion limit.
func NewFinder() *Finder {
	return &Finder{maxExplored: DefaultMaxExplored}
}

// SetMaxExplored sets the maximum number of cells a single search may expand.
func (f *Finder) SetMaxExplored(max int) {
	f.maxExplored = max
}

// FindPath searches with a default Finder.
func FindPath(start, goal geometry.GridCoord, free CellFree) ([]geometry.GridCoord, error) {
	return NewFinder().FindPath(start, goal, free)
}

// FindPath returns the cells from start to goal inclusive, moving one axis step at a
// time through cells accepted by free. The goal itself is always accepted, even when
// free rejects it, since it sits on the border of a node's reserved block.
func (f *Finder) FindPath(start, goal geometry.GridCoord, free CellFree) ([]geometry.GridCoord, error) {
	if start == goal {
		return []geometry.GridCoord{start}, nil
	}

	open := &frontier{}
	heap.Init(open)
	seq := 0
	heap.Push(open, &searchNode{coord: start, priority: 0, seq: seq})

	costSoFar := map[geometry.GridCoord]int{start: 0}
	cameFrom := map[geometry.GridCoord]geometry.GridCoord{}

	explored := 0
	for open.Len() > 0 {
		current := heap.Pop(open).(*searchNode).coord
		if current == goal {
			return reconstruct(cameFrom, start, goal), nil
		}

		explored++
		if f.maxExplored > 0 && explored > f.maxExplored {
			return nil, fmt.Errorf("%w from %v to %v: explored more than %d cells", ErrNoPath, start, goal, f.maxExplored)
		}

		for _, dir := range moves {
			next := current.Add(dir)
			if next != goal && (free == nil || !free(next)) {
				continue
			}
			cost := costSoFar[current] + 1
			if known, ok := costSoFar[next]; ok && cost >= known {
				continue
			}
			costSoFar[next] = cost
			cameFrom[next] = current
			seq++
			heap.Push(open, &searchNode{coord: next, priority: cost + heuristic(next, goal), seq: seq})
		}
	}

	return nil, fmt.Errorf("%w from %v to %v", ErrNoPath, start, goal)
}

// heuristic is the Manhattan distance, plus one when a corner is still unavoidable.
// The extra unit biases the search towards straight runs.
func heuristic(a, b geometry.GridCoord) int {
	dx := geometry.Abs(a.X - b.X)
	dy := geometry.Abs(a.Y - b.Y)
	if dx == 0 || dy == 0 {
		return dx + dy
	}
	return dx + dy + 1
}

// reconstruct walks predecessor links back from goal and reverses them.
func reconstruct(cameFrom map[geometry.GridCoord]geometry.GridCoord, start, goal geometry.GridCoord) []geometry.GridCoord {
	path := []geometry.GridCoord{goal}
	for current := goal; current != start; {
		current = cameFrom[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
