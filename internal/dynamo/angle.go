package dynamo

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const twoPi = 2 * math.Pi

// WrapAngle maps a into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	if a >= twoPi {
		a = 0
	}
	return a
}

// AngleDiff returns the shortest signed arc from a to b, in (-π, π].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(b-a, twoPi)
	if d > math.Pi {
		d -= twoPi
	} else if d <= -math.Pi {
		d += twoPi
	}
	return d
}

// resultantEpsilon is the summed unit-vector length below which a set of
// angles has no meaningful mean direction.
const resultantEpsilon = 1e-12

// MeanDirection is the direction of the resultant (sx, sy) of n unit
// vectors, in [0, 2π). ok is false when n is zero or the resultant is too
// short to point anywhere.
func MeanDirection(sx, sy float64, n int) (mean float64, ok bool) {
	if n == 0 || math.Hypot(sx, sy) < resultantEpsilon*float64(n) {
		return 0, false
	}
	return WrapAngle(math.Atan2(sy, sx)), true
}

// CircularMean is the direction of the summed unit vectors of angles, in
// [0, 2π). ok is false for an empty input or when the vectors cancel.
func CircularMean(angles []float64) (mean float64, ok bool) {
	var sx, sy float64
	for _, a := range angles {
		sy += math.Sin(a)
		sx += math.Cos(a)
	}
	if _, ok := MeanDirection(sx, sy, len(angles)); !ok {
		return 0, false
	}
	return WrapAngle(stat.CircularMean(angles, nil)), true
}
