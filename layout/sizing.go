package layout

import (
	"github.com/Chickensoupwithrice/mermaid-ascii/canvas"
	"github.com/Chickensoupwithrice/mermaid-ascii/geometry"
)

// grow raises a size entry to at least v. Sizes never shrink.
func grow(sizes map[int]int, key, v int) {
	sizes[key] = max(sizes[key], v)
}

// size fits each node's block to its label. The middle column holds the label and
// its border padding, the outer columns and rows hold the border. The column and row
// before a block become the gap between it and its neighbour.
func (g *Graph) size() {
	g.mustReach(phasePlaced, "size")
	pad := g.opts.BorderPadding
	for _, n := range g.nodes {
		c := *n.Grid
		cols := [3]int{1, 2*pad + canvas.StringWidth(n.Name), 1}
		rows := [3]int{1, 2*pad + 1, 1}
		for i := 0; i < 3; i++ {
			grow(g.columnWidth, c.X+i, cols[i])
			grow(g.rowHeight, c.Y+i, rows[i])
		}
		if c.X > 0 {
			grow(g.columnWidth, c.X-1, g.opts.PaddingBetweenColumns)
		}
		if c.Y > 0 {
			grow(g.rowHeight, c.Y-1, g.opts.PaddingBetweenRows)
		}
	}
	g.phase = phaseSized
}

// sizePath gives every waypoint column and row that no node sized a width of half
// the configured gap.
func (g *Graph) sizePath(path []geometry.GridCoord) {
	for _, c := range path {
		if _, ok := g.columnWidth[c.X]; !ok {
			g.columnWidth[c.X] = g.opts.PaddingBetweenColumns / 2
		}
		if _, ok := g.rowHeight[c.Y]; !ok {
			g.rowHeight[c.Y] = g.opts.PaddingBetweenRows / 2
		}
	}
}

// lineWidth returns the number of characters available along a segment: the summed
// widths of every column it spans.
func (g *Graph) lineWidth(a, b geometry.GridCoord) int {
	lo, hi := min(a.X, b.X), max(a.X, b.X)
	width := 0
	for x := lo; x <= hi; x++ {
		width += g.columnWidth[x]
	}
	return width
}

// placeLabels picks the segment each label is drawn on: the first one wide enough,
// or the widest one. The middle column of the chosen segment is widened to fit the
// label with a blank on either side.
func (g *Graph) placeLabels() {
	g.mustReach(phaseRouted, "placeLabels")
	for _, e := range g.edges {
		width := canvas.StringWidth(e.Label)
		if width == 0 || len(e.Path) < 2 {
			continue
		}

		var best []geometry.GridCoord
		bestWidth := -1
		for i := 1; i < len(e.Path); i++ {
			a, b := e.Path[i-1], e.Path[i]
			w := g.lineWidth(a, b)
			if w >= width {
				best = []geometry.GridCoord{a, b}
				break
			}
			if w > bestWidth {
				best, bestWidth = []geometry.GridCoord{a, b}, w
			}
		}

		lo, hi := min(best[0].X, best[1].X), max(best[0].X, best[1].X)
		grow(g.columnWidth, lo+(hi-lo)/2, width+2)
		e.LabelLine = best
	}
	g.phase = phaseLabelled
}
