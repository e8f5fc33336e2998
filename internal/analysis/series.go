package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Min, Max  float64
	Mean, Std float64
	Last      float64
	N         int
}

// Summarize reduces a series. The zero Summary is returned for an empty
// series.
func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if len(xs) == 1 {
		std = 0
	}
	return Summary{
		Min:  floats.Min(xs),
		Max:  floats.Max(xs),
		Mean: mean,
		Std:  std,
		Last: xs[len(xs)-1],
		N:    len(xs),
	}
}

// SettleTime is the time of the first sample after which every sample
// stays within tol of the final value. ok is false for an empty series.
func SettleTime(xs []float64, dt, tol float64) (t float64, ok bool) {
	if len(xs) == 0 {
		return 0, false
	}
	final := xs[len(xs)-1]
	i := len(xs) - 1
	for i > 0 && math.Abs(xs[i-1]-final) <= tol {
		i--
	}
	return float64(i) * dt, true
}

// Monotone reports whether xs never decreases by more than tol.
func Monotone(xs []float64, tol float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1]-tol {
			return false
		}
	}
	return true
}
