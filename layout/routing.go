package layout

import (
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Chickensoupwithrice/mermaid-ascii/diagram"
	"github.com/Chickensoupwithrice/mermaid-ascii/geometry"
	"github.com/Chickensoupwithrice/mermaid-ascii/pathfinding"
)

// attachment is a pair of block sides a route may leave from and arrive at.
type attachment struct {
	start, end geometry.Direction
}

// attachments returns the preferred and alternative sides to route e between, based
// on where the target lies relative to the source. Routes that run against the flow
// leave from the side so they do not cut back through the source's own level.
func attachments(o diagram.Orientation, from, to geometry.GridCoord, self bool) (preferred, alternative attachment) {
	vertical := o.IsVertical()
	if self {
		if vertical {
			return attachment{geometry.Down, geometry.Right}, attachment{geometry.Right, geometry.Down}
		}
		return attachment{geometry.Right, geometry.Down}, attachment{geometry.Down, geometry.Right}
	}

	d := geometry.Between(from, to)
	switch d {
	case geometry.LowerRight:
		if vertical {
			return attachment{geometry.Right, geometry.Up}, attachment{geometry.Down, geometry.Left}
		}
		return attachment{geometry.Down, geometry.Left}, attachment{geometry.Right, geometry.Up}
	case geometry.UpperRight:
		if vertical {
			return attachment{geometry.Right, geometry.Down}, attachment{geometry.Up, geometry.Left}
		}
		return attachment{geometry.Up, geometry.Left}, attachment{geometry.Right, geometry.Down}
	case geometry.LowerLeft:
		if vertical {
			return attachment{geometry.Left, geometry.Up}, attachment{geometry.Down, geometry.Right}
		}
		return attachment{geometry.Down, geometry.Down}, attachment{geometry.Left, geometry.Up}
	case geometry.UpperLeft:
		if vertical {
			return attachment{geometry.Right, geometry.Right}, attachment{geometry.Up, geometry.Right}
		}
		return attachment{geometry.Down, geometry.Down}, attachment{geometry.Left, geometry.Down}
	}

	switch {
	case !vertical && d == geometry.Left:
		return attachment{geometry.Down, geometry.Down}, attachment{geometry.Left, geometry.Right}
	case vertical && d == geometry.Up:
		return attachment{geometry.Right, geometry.Right}, attachment{geometry.Up, geometry.Down}
	}
	straight := attachment{d, d.Opposite()}
	return straight, straight
}

// free reports whether a route may pass through c: inside the grid and outside every
// node's block.
func (g *Graph) free(c geometry.GridCoord) bool {
	return c.X >= 0 && c.Y >= 0 && g.occupied[c] == nil
}

type routeResult struct {
	path []geometry.GridCoord
	via  attachment
	err  error
}

// routeEdge searches both candidate routes for e and keeps the one with fewer
// waypoints, the preferred one on a tie.
func (g *Graph) routeEdge(e *Edge) routeResult {
	preferred, alternative := attachments(g.orientation, *e.From.Grid, *e.To.Grid, e.From == e.To)

	search := func(a attachment) ([]geometry.GridCoord, error) {
		start := e.From.Grid.Step(a.start)
		goal := e.To.Grid.Step(a.end)
		path, err := g.finder.FindPath(start, goal, g.free)
		if err != nil {
			return nil, err
		}
		return pathfinding.SimplifyPath(path), nil
	}

	prefPath, prefErr := search(preferred)
	altPath, altErr := search(alternative)
	switch {
	case prefErr != nil && altErr != nil:
		return routeResult{err: &RoutingError{From: e.From.Name, To: e.To.Name, Err: errors.Join(prefErr, altErr)}}
	case prefErr != nil:
		return routeResult{path: altPath, via: alternative}
	case altErr != nil:
		return routeResult{path: prefPath, via: preferred}
	case len(prefPath) <= len(altPath):
		return routeResult{path: prefPath, via: preferred}
	default:
		return routeResult{path: altPath, via: alternative}
	}
}

// route finds a path for every edge. Searches run concurrently against the occupancy
// map, which nothing writes to during this phase. Results are applied in edge order
// and the first failing edge in that order is reported.
func (g *Graph) route() error {
	g.mustReach(phaseSized, "route")

	results := make([]routeResult, len(g.edges))

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, e := range g.edges {
		eg.Go(func() error {
			results[i] = g.routeEdge(e)
			return results[i].err
		})
	}
	if err := eg.Wait(); err != nil {
		for i, e := range g.edges {
			if r := results[i]; r.err != nil {
				g.log.Debug("routing failed", "from", e.From.Name, "to", e.To.Name, "err", r.err)
				return r.err
			}
		}
	}

	for i, e := range g.edges {
		r := results[i]
		e.Path = r.path
		e.StartDir, e.EndDir = r.via.start, r.via.end
		g.sizePath(e.Path)
		g.log.Debug("edge routed", "from", e.From.Name, "to", e.To.Name, "waypoints", len(e.Path))
	}
	g.phase = phaseRouted
	return nil
}
