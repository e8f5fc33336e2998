package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/integrators"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method with RK4.
//
// Algorithm:
// 1. Run two nearby trajectories
// 2. Accumulate ln(|δx|/δ0) and rescale the twin back to δ0 every step
// 3. λ ≈ Σ ln(|δx|/δ0) / t
func LyapunovExponent(dyn dynamo.System, x0 dynamo.State, dt, duration, perturbation float64) float64 {
	if len(x0) == 0 || dt <= 0 || perturbation <= 0 {
		return 0
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += perturbation

	t := 0.0
	sumLog := 0.0
	for t < duration {
		x = integrators.RK4Step(dyn, x, nil, t, dt)
		xp = integrators.RK4Step(dyn, xp, nil, t, dt)
		t += dt

		sep := xp.Sub(x).Norm()
		if sep == 0 || !dynamo.Finite(sep) {
			break
		}
		sumLog += math.Log(sep / perturbation)

		scale := perturbation / sep
		for i := range xp {
			xp[i] = x[i] + (xp[i]-x[i])*scale
		}
	}

	if t == 0 {
		return 0
	}
	return sumLog / t
}

// Trend is a straight-line fit of ln(separation) against time.
type Trend struct {
	Slope     float64 // growth rate per second
	Intercept float64
	RSquared  float64
	Samples   int
}

// Growing reports a positive trend.
func (t Trend) Growing() bool { return t.Samples >= 2 && t.Slope > 0 }

// SeparationTrend fits ln(sep) = Intercept + Slope·t over samples taken
// every dt. Non-positive and non-finite samples are skipped.
func SeparationTrend(seps []float64, dt float64) Trend {
	xs := make([]float64, 0, len(seps))
	ys := make([]float64, 0, len(seps))
	for i, s := range seps {
		if s <= 0 || !dynamo.Finite(s) {
			continue
		}
		xs = append(xs, float64(i)*dt)
		ys = append(ys, math.Log(s))
	}
	if len(xs) < 2 {
		return Trend{Samples: len(xs)}
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Trend{
		Slope:     beta,
		Intercept: alpha,
		RSquared:  stat.RSquared(xs, ys, nil, alpha, beta),
		Samples:   len(xs),
	}
}
