package pathfinding

import "github.com/Chickensoupwithrice/mermaid-ascii/geometry"

// SimplifyPath drops every interior cell where the path keeps going in the same
// direction, leaving only the start, the turning points and the end.
// Paths of two cells or fewer are returned unchanged.
func SimplifyPath(path []geometry.GridCoord) []geometry.GridCoord {
	if len(path) <= 2 {
		return path
	}

	simplified := make([]geometry.GridCoord, 0, len(path))
	simplified = append(simplified, path[0])
	for i := 1; i < len(path)-1; i++ {
		if path[i] == simplified[len(simplified)-1] {
			continue
		}
		in := geometry.Between(simplified[len(simplified)-1], path[i])
		out := geometry.Between(path[i], path[i+1])
		if in == out {
			continue
		}
		simplified = append(simplified, path[i])
	}
	return append(simplified, path[len(path)-1])
}

// Length returns the number of cells a simplified path covers, counting both ends.
func Length(path []geometry.GridCoord) int {
	if len(path) == 0 {
		return 0
	}
	n := 1
	for i := 1; i < len(path); i++ {
		n += path[i].Manhattan(path[i-1])
	}
	return n
}
