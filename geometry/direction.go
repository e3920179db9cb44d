package geometry

// Direction is one of the eight compass vectors, plus Middle for the degenerate case
// where two points coincide (self-referencing edges).
type Direction int

const (
	Middle Direction = iota
	Up
	Down
	Left
	Right
	UpperLeft
	UpperRight
	LowerLeft
	LowerRight
)

// Directions lists every direction, Middle first.
var Directions = []Direction{Middle, Up, Down, Left, Right, UpperLeft, UpperRight, LowerLeft, LowerRight}

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case Middle:
		return "Middle"
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case UpperLeft:
		return "UpperLeft"
	case UpperRight:
		return "UpperRight"
	case LowerLeft:
		return "LowerLeft"
	case LowerRight:
		return "LowerRight"
	default:
		return "Unknown"
	}
}

// Opposite returns the direction pointing the other way. Middle is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	case UpperLeft:
		return LowerRight
	case UpperRight:
		return LowerLeft
	case LowerLeft:
		return UpperRight
	case LowerRight:
		return UpperLeft
	default:
		return d
	}
}

// Delta returns the unit vector of d. Middle is the zero vector.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case UpperLeft:
		return -1, -1
	case UpperRight:
		return 1, -1
	case LowerLeft:
		return -1, 1
	case LowerRight:
		return 1, 1
	default:
		return 0, 0
	}
}

// Offset returns the position of d inside a 3x3 block whose top-left cell is (0,0).
// Up is the middle of the top border, Right the middle of the right border, and so on.
func (d Direction) Offset() (dx, dy int) {
	x, y := d.Delta()
	return x + 1, y + 1
}

// IsAxis reports whether d is one of the four cardinal directions.
func (d Direction) IsAxis() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	default:
		return false
	}
}

// IsDiagonal reports whether d is one of the four diagonal directions.
func (d Direction) IsDiagonal() bool {
	switch d {
	case UpperLeft, UpperRight, LowerLeft, LowerRight:
		return true
	default:
		return false
	}
}

// FromDelta classifies a displacement: a single non-zero axis gives a cardinal
// direction, two give the matching diagonal, none gives Middle.
func FromDelta(dx, dy int) Direction {
	switch sx, sy := Sign(dx), Sign(dy); {
	case sx == 0 && sy == 0:
		return Middle
	case sx == 0 && sy < 0:
		return Up
	case sx == 0:
		return Down
	case sy == 0 && sx < 0:
		return Left
	case sy == 0:
		return Right
	case sx < 0 && sy < 0:
		return UpperLeft
	case sy < 0:
		return UpperRight
	case sx < 0:
		return LowerLeft
	default:
		return LowerRight
	}
}

// Between returns the direction pointing from a to b.
func Between(a, b GridCoord) Direction {
	return FromDelta(b.X-a.X, b.Y-a.Y)
}

// CanvasBetween returns the direction pointing from a to b on the canvas.
func CanvasBetween(a, b CanvasCoord) Direction {
	return FromDelta(b.X-a.X, b.Y-a.Y)
}
