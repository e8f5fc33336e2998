package integrators

import "github.com/san-kum/simlab/internal/dynamo"

// explicitEuler is the first-order reference method. It gains energy on
// oscillators, which is what the semi-implicit tests compare against.
type explicitEuler struct{}

func (explicitEuler) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	dx := dyn.Derive(x, u, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}

// oscillatorStep advances the unit harmonic oscillator with SemiImplicit.
func oscillatorStep(x dynamo.State, dt float64, resolve func(float64) float64) dynamo.State {
	q, v := SemiImplicit(x[0], x[1], -x[0], dt, resolve)
	return dynamo.State{q, v}
}
