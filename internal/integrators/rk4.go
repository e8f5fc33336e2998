package integrators

import "github.com/san-kum/simlab/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta method. It keeps no scratch
// buffers between calls, so one value can advance several trajectories and
// identical inputs always give identical outputs.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	return RK4Step(dyn, x, u, t, dt)
}

// RK4Step samples the derivative at x, x+dt/2·k1, x+dt/2·k2 and x+dt·k3 and
// combines them with weights 1, 2, 2, 1 over 6.
func RK4Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	scratch := make(dynamo.State, n)

	k1 := dyn.Derive(x, u, t)

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + dt*0.5*k1[i]
	}
	k2 := dyn.Derive(scratch, u, t+dt*0.5)

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + dt*0.5*k2[i]
	}
	k3 := dyn.Derive(scratch, u, t+dt*0.5)

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + dt*k3[i]
	}
	k4 := dyn.Derive(scratch, u, t+dt)

	result := make(dynamo.State, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	return result
}
