// File: utils/utils.go
package utils

// Abs returns the absolute value of x.
func Abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SameSign reports whether a and b are both positive or both negative.
// Zero has no sign and never matches.
func SameSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}
