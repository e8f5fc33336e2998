package physics

import (
	"math"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/geom"
)

// FrictionForce returns the friction force on a body with velocity v under
// an applied force. At rest (|v| ≤ eps) static friction cancels the applied
// force up to muN; in motion kinetic friction has magnitude muN against v.
func FrictionForce(applied, v, muN, eps float64) float64 {
	if math.Abs(v) <= eps {
		return -dynamo.Clamp(applied, -muN, muN)
	}
	return -math.Copysign(muN, v)
}

// FrictionForce2 is FrictionForce for planar motion. held reports that
// static friction fully cancels the applied force.
func FrictionForce2(applied, v geom.Vec2, muN, eps float64) (f geom.Vec2, held bool) {
	if v.Length() <= eps {
		mag := applied.Length()
		if mag <= muN {
			return applied.Scale(-1), true
		}
		return applied.Scale(-muN / mag), false
	}
	return v.Normalize().Scale(-muN), false
}

// kineticSlowdown removes a speed of dv from v without reversing it.
func kineticSlowdown(v, dv float64) float64 {
	if math.Abs(v) <= dv {
		return 0
	}
	return v - math.Copysign(dv, v)
}
