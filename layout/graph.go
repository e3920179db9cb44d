// Package layout turns a diagram into a positioned graph: nodes placed on a coarse grid,
// grid columns and rows sized to fit labels, edges routed around nodes, and every grid
// position resolved to a character position on the output canvas.
//
// The pipeline runs in fixed phases. Each phase requires the previous one:
//
//	placement → sizing → routing → label placement → coordinate resolution → canvas sizing
package layout

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/Chickensoupwithrice/mermaid-ascii/canvas"
	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
	"github.com/Chickensoupwithrice/mermaid-ascii/geometry"
	"github.com/Chickensoupwithrice/mermaid-ascii/pathfinding"
)

var (
	// ErrUnplaced is returned when a node has no grid position after placement.
	ErrUnplaced = errors.New("node has no grid position")
	// ErrLaidOut is returned when layout runs on a graph already laid out.
	ErrLaidOut = errors.New("graph already laid out")
)

// RoutingError reports an edge for which neither candidate route exists.
type RoutingError struct {
	From, To string
	Err      error
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("no route from %q to %q: %v", e.From, e.To, e.Err)
}

func (e *RoutingError) Unwrap() error {
	return e.Err
}

type phase int

const (
	phaseNew phase = iota
	phasePlaced
	phaseSized
	phaseRouted
	phaseLabelled
	phaseResolved
)

func (p phase) String() string {
	switch p {
	case phaseNew:
		return "new"
	case phasePlaced:
		return "placed"
	case phaseSized:
		return "sized"
	case phaseRouted:
		return "routed"
	case phaseLabelled:
		return "labelled"
	case phaseResolved:
		return "resolved"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Node is a box in the layout.
type Node struct {
	Name       string
	Index      int
	StyleClass string
	// Grid is the top-left cell of the node's reserved 3x3 block. Nil until placed.
	Grid *geometry.GridCoord
	// Canvas is the top-left character of the node's box.
	Canvas geometry.CanvasCoord
	Box    *canvas.Canvas
	Drawn  bool
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From, To *Node
	Label    string

	// StartDir and EndDir name the border cells of the source and target blocks the
	// route attaches to.
	StartDir geometry.Direction
	EndDir   geometry.Direction
	// Path holds the waypoints of the route: its ends and every turn.
	Path []geometry.GridCoord
	// LabelLine is the path segment the label is centred on. Empty when unlabelled.
	LabelLine []geometry.GridCoord
}

// Graph is a diagram being laid out.
type Graph struct {
	nodes  []*Node
	byName map[string]*Node
	edges  []*Edge

	occupied    map[geometry.GridCoord]*Node
	columnWidth map[int]int
	rowHeight   map[int]int

	orientation diagram.Orientation
	opts        diagram.Options
	styles      map[string]diagram.StyleClass
	canvas      *canvas.Canvas
	finder      *pathfinding.Finder
	phase       phase
	log         *log.Logger
}

// Build lays out d with opts, running every phase.
func Build(d *diagram.Diagram, opts diagram.Options) (*Graph, error) {
	g, err := NewGraph(d, opts)
	if err != nil {
		return nil, err
	}
	if err := g.Layout(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewGraph creates the nodes and edges of d in discovery order without laying them out.
func NewGraph(d *diagram.Diagram, opts diagram.Options) (*Graph, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	g := &Graph{
		byName:      make(map[string]*Node),
		occupied:    make(map[geometry.GridCoord]*Node),
		columnWidth: make(map[int]int),
		rowHeight:   make(map[int]int),
		orientation: opts.OrientationFor(d),
		opts:        opts,
		styles:      d.StyleClasses,
		finder:      pathfinding.NewFinder(),
		log:         opts.Log(),
	}

	seen := make(map[string]bool, len(d.Nodes))
	parents := slices.Clone(d.Nodes)
	for _, p := range slices.Sorted(maps.Keys(d.Edges)) {
		if !slices.Contains(d.Nodes, p) {
			parents = append(parents, p)
		}
	}
	for _, name := range parents {
		if seen[name] {
			continue
		}
		seen[name] = true
		from := g.addNode(name, d.ClassOf(name))
		for _, r := range d.Edges[name] {
			to := g.addNode(r.Child, d.ClassOf(r.Child))
			g.edges = append(g.edges, &Edge{From: from, To: to, Label: r.Label})
		}
	}

	g.log.Debug("graph created", "nodes", len(g.nodes), "edges", len(g.edges), "orientation", g.orientation)
	return g, nil
}

func (g *Graph) addNode(name, class string) *Node {
	if n, ok := g.byName[name]; ok {
		return n
	}
	n := &Node{Name: name, Index: len(g.nodes), StyleClass: class}
	g.nodes = append(g.nodes, n)
	g.byName[name] = n
	return n
}

// Layout runs the remaining phases in order.
func (g *Graph) Layout() error {
	if g.phase != phaseNew {
		return ErrLaidOut
	}
	if err := g.place(); err != nil {
		return err
	}
	g.size()
	if err := g.route(); err != nil {
		return err
	}
	g.placeLabels()
	g.resolve()
	g.sizeCanvas()
	return nil
}

// Nodes returns the nodes in discovery order.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Edges returns the edges in declaration order.
func (g *Graph) Edges() []*Edge { return g.edges }

// Node returns the node with the given name.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.byName[name]
	return n, ok
}

// Orientation returns the flow orientation the graph is laid out in.
func (g *Graph) Orientation() diagram.Orientation { return g.orientation }

// Options returns the options the graph was built with.
func (g *Graph) Options() diagram.Options { return g.opts }

// StyleClasses returns the style classes declared by the diagram.
func (g *Graph) StyleClasses() map[string]diagram.StyleClass { return g.styles }

// Glyphs returns the glyph set selected by the options.
func (g *Graph) Glyphs() *canvas.GlyphSet { return canvas.Glyphs(g.opts.UseASCII) }

// Logger returns the logger the graph reports progress to.
func (g *Graph) Logger() *log.Logger { return g.log }

// Canvas returns the output canvas sized to the whole grid. It holds the boxes of
// every node marked Drawn and is blank before any are.
func (g *Graph) Canvas() *canvas.Canvas {
	g.mustReach(phaseResolved, "Canvas")
	return g.canvas
}

// SetCanvas replaces the output canvas. The caller marks the nodes whose boxes c
// holds as Drawn.
func (g *Graph) SetCanvas(c *canvas.Canvas) {
	g.mustReach(phaseResolved, "SetCanvas")
	g.canvas = c
}

// ColumnWidth returns the width in characters of grid column x.
func (g *Graph) ColumnWidth(x int) int { return g.columnWidth[x] }

// RowHeight returns the height in characters of grid row y.
func (g *Graph) RowHeight(y int) int { return g.rowHeight[y] }

// OccupiedBy returns the node whose reserved block covers c, if any.
func (g *Graph) OccupiedBy(c geometry.GridCoord) *Node { return g.occupied[c] }

// GridToCanvas converts a grid cell to the character at the middle of that cell.
// It panics if column widths and row heights are not yet final.
func (g *Graph) GridToCanvas(c geometry.GridCoord) geometry.CanvasCoord {
	g.mustReach(phaseLabelled, "GridToCanvas")
	x, y := 0, 0
	for col := 0; col < c.X; col++ {
		x += g.columnWidth[col]
	}
	for row := 0; row < c.Y; row++ {
		y += g.rowHeight[row]
	}
	return geometry.CanvasCoord{
		X: x + g.columnWidth[c.X]/2,
		Y: y + g.rowHeight[c.Y]/2,
	}
}

// LineToCanvas converts every cell of a grid line.
func (g *Graph) LineToCanvas(line []geometry.GridCoord) []geometry.CanvasCoord {
	out := make([]geometry.CanvasCoord, len(line))
	for i, c := range line {
		out[i] = g.GridToCanvas(c)
	}
	return out
}

func (g *Graph) mustReach(p phase, op string) {
	if g.phase < p {
		panic(fmt.Sprintf("layout: %s requires a %s graph, graph is %s", op, p, g.phase))
	}
}

// resolve converts node positions to canvas positions and draws each node's box.
func (g *Graph) resolve() {
	glyphs := g.Glyphs()
	for _, n := range g.nodes {
		n.Canvas = g.GridToCanvas(*n.Grid)
		n.Box = g.boxFragment(n, glyphs)
	}
	g.phase = phaseResolved
}

// sizeCanvas creates the output canvas covering every sized column and row.
func (g *Graph) sizeCanvas() {
	width, height := 0, 0
	for _, w := range g.columnWidth {
		width += w
	}
	for _, h := range g.rowHeight {
		height += h
	}
	g.canvas = canvas.New(width, height, g.Glyphs())
	g.log.Debug("canvas sized", "width", width, "height", height)
}
