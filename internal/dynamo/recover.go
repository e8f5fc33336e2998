package dynamo

import "math"

// Recover replaces every non-finite entry of next with the matching entry of
// prev, or of fallback when prev is also non-finite or absent. It returns
// the repaired vector and the number of dimensions touched. next is
// modified in place.
func Recover(next, prev, fallback State) (State, int) {
	n := 0
	for i, v := range next {
		if isFinite(v) {
			continue
		}
		n++
		switch {
		case i < len(prev) && isFinite(prev[i]):
			next[i] = prev[i]
		case i < len(fallback):
			next[i] = fallback[i]
		default:
			next[i] = 0
		}
	}
	return next, n
}

// Finite reports whether x is neither NaN nor infinite.
func Finite(x float64) bool { return isFinite(x) }

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// Clamp bounds x to [lo, hi]. NaN maps to lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
