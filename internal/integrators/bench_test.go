package integrators

import (
	"testing"

	"github.com/san-kum/simlab/internal/dynamo"
)

func BenchmarkEuler(b *testing.B) {
	integrator := explicitEuler{}
	dyn := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, nil, 0, 0.01)
	}
}

func BenchmarkSemiImplicit(b *testing.B) {
	x := dynamo.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = oscillatorStep(x, 0.01, nil)
	}
}

func BenchmarkRK4_Lorenz(b *testing.B) {
	x := dynamo.State{1, 1, 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = RK4Step(lorenzRHS{}, x, nil, 0, 0.005)
	}
}

func BenchmarkRelaxation_64x48(b *testing.B) {
	cols, rows := 64, 48
	cur := make([]float64, cols*rows)
	next := make([]float64, cols*rows)
	for i := range cur {
		cur[i] = dynamo.WrapAngle(float64(i) * 1.3)
	}
	r := NewRelaxation()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Sweep(cur, next, cols, rows, 0.2)
		cur, next = next, cur
	}
}
