package geometry

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1 according to the sign of x.
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

// CeilDiv divides a by b rounding towards positive infinity. b must be positive.
func CeilDiv(a, b int) int {
	if a >= 0 {
		return (a + b - 1) / b
	}
	return a / b
}
