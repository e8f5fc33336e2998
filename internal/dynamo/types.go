package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

type Control []float64

// System is an ODE right-hand side dX/dt = f(X, u, t).
type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
}

// Integrator advances a System by one step of size dt.
type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

// Model is one interactive simulation. Implementations are stateless: all
// mutable data lives in S, which the caller owns.
type Model[S any, P any] interface {
	// Init builds a fresh state. Two calls with equal params yield equal states.
	Init(p P) S
	// Step advances s by exactly one fixed timestep.
	Step(s S, p P, dt float64) S
	// Apply performs a direct edit and leaves dependent references consistent.
	Apply(s S, p P, ev Event) S
	// Diagnose derives readouts from s without modifying it.
	Diagnose(s S, p P) Diagnostics
}

// Randomizer is implemented by models that support a seeded random restart.
type Randomizer[S any, P any] interface {
	Randomize(p P, seed int64) S
}
