package physics

import (
	"math"
	"testing"

	"github.com/san-kum/simlab/internal/geom"
)

func TestFrictionForce(t *testing.T) {
	tests := []struct {
		name            string
		applied, v, muN float64
		want            float64
	}{
		{"static cancels", 5, 0, 10, -5},
		{"static saturates", 15, 0, 10, -10},
		{"static negative", -4, 0, 10, 4},
		{"kinetic positive", 3, 2, 10, -10},
		{"kinetic negative", 3, -2, 10, 10},
		{"below epsilon is static", 3, 1e-6, 10, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FrictionForce(tt.applied, tt.v, tt.muN, 1e-4)
			if got != tt.want {
				t.Errorf("FrictionForce(%v, %v, %v) = %v, want %v", tt.applied, tt.v, tt.muN, got, tt.want)
			}
		})
	}
}

func TestFrictionForce2(t *testing.T) {
	f, held := FrictionForce2(geom.Vec2{X: 3, Y: 4}, geom.Vec2{}, 10, 1e-4)
	if !held || f != (geom.Vec2{X: -3, Y: -4}) {
		t.Errorf("expected held with (-3,-4), got %v held=%v", f, held)
	}

	f, held = FrictionForce2(geom.Vec2{X: 30, Y: 40}, geom.Vec2{}, 10, 1e-4)
	if held {
		t.Error("force above muN should break away")
	}
	if math.Abs(f.X+6) > 1e-12 || math.Abs(f.Y+8) > 1e-12 {
		t.Errorf("breakaway friction = %v, want (-6,-8)", f)
	}

	f, held = FrictionForce2(geom.Vec2{X: 100}, geom.Vec2{Y: -2}, 10, 1e-4)
	if held || math.Abs(f.Y-10) > 1e-12 || f.X != 0 {
		t.Errorf("kinetic friction should oppose velocity, got %v", f)
	}
}

func TestKineticSlowdownNeverReverses(t *testing.T) {
	if v := kineticSlowdown(1, 2); v != 0 {
		t.Errorf("expected stop, got %v", v)
	}
	if v := kineticSlowdown(-3, 1); v != -2 {
		t.Errorf("expected -2, got %v", v)
	}
	if v := slowdown2(geom.Vec2{X: 3, Y: 4}, 10); v != (geom.Vec2{}) {
		t.Errorf("expected stop, got %v", v)
	}
}
