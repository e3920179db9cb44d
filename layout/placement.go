package layout

import (
	"fmt"

	"github.com/Chickensoupwithrice/mermaid-ascii/geometry"
)

// blockSpan is the distance between neighbouring node blocks on the grid: a 3x3 block
// plus one free cell for routing.
const blockSpan = 4

// children returns the targets of n's outgoing edges in edge order.
func (g *Graph) children(n *Node) []*Node {
	var out []*Node
	for _, e := range g.edges {
		if e.From == n {
			out = append(out, e.To)
		}
	}
	return out
}

// roots returns the nodes not seen as a child of any node discovered before them.
// A child referenced only by a later node therefore still counts as a root.
func (g *Graph) roots() []*Node {
	var roots []*Node
	found := make(map[*Node]bool, len(g.nodes))
	for _, n := range g.nodes {
		if !found[n] {
			roots = append(roots, n)
		}
		found[n] = true
		for _, c := range g.children(n) {
			found[c] = true
		}
	}
	return roots
}

// at returns the grid cell at a flow level and cross-axis position.
func (g *Graph) at(level, pos int) geometry.GridCoord {
	if g.orientation.IsVertical() {
		return geometry.GridCoord{X: pos, Y: level}
	}
	return geometry.GridCoord{X: level, Y: pos}
}

// level returns the coordinate of c along the flow axis.
func (g *Graph) level(c geometry.GridCoord) int {
	if g.orientation.IsVertical() {
		return c.Y
	}
	return c.X
}

// cross returns the coordinate of c across the flow axis.
func (g *Graph) cross(c geometry.GridCoord) int {
	if g.orientation.IsVertical() {
		return c.X
	}
	return c.Y
}

// reserve claims the 3x3 block for n at want, moving along the cross axis until a
// free block is found.
func (g *Graph) reserve(n *Node, want geometry.GridCoord) geometry.GridCoord {
	for g.occupied[want] != nil {
		want = g.at(g.level(want), g.cross(want)+blockSpan)
	}
	for dx := 0; dx < 3; dx++ {
		for dy := 0; dy < 3; dy++ {
			g.occupied[geometry.GridCoord{X: want.X + dx, Y: want.Y + dy}] = n
		}
	}
	return want
}

// place assigns every node a grid position. Roots go in the first level; every other
// node goes one level after the parent that reaches it first, in the next free slot
// of that level.
func (g *Graph) place() error {
	if g.phase != phaseNew {
		return ErrLaidOut
	}

	next := make(map[int]int) // level -> next free cross-axis position
	roots := g.roots()
	for _, r := range roots {
		c := g.reserve(r, g.at(0, next[0]))
		r.Grid = &c
		next[0] = g.cross(c) + blockSpan
	}

	for _, n := range g.nodes {
		if n.Grid == nil {
			continue
		}
		childLevel := g.level(*n.Grid) + blockSpan
		for _, child := range g.children(n) {
			if child.Grid != nil {
				continue
			}
			c := g.reserve(child, g.at(childLevel, next[childLevel]))
			child.Grid = &c
			next[childLevel] = g.cross(c) + blockSpan
		}
	}

	for _, n := range g.nodes {
		if n.Grid == nil {
			return fmt.Errorf("%w: %q", ErrUnplaced, n.Name)
		}
	}

	g.phase = phasePlaced
	g.log.Debug("nodes placed", "nodes", len(g.nodes), "roots", len(roots))
	return nil
}
