package integrators

import (
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/geom"
)

var _ dynamo.Integrator = (*RK4)(nil)

// SemiImplicit is one symplectic Euler step of a single coordinate. The
// velocity is updated from the acceleration first; resolve, when set,
// may then replace it (friction, contact holds) before the position is
// advanced with the result. dt must stay constant across calls for the
// bounded energy error to hold.
func SemiImplicit(q, v, a, dt float64, resolve func(vCons float64) float64) (float64, float64) {
	v += a * dt
	if resolve != nil {
		v = resolve(v)
	}
	return q + v*dt, v
}

// SemiImplicit2 is SemiImplicit for planar motion. resolve sees the whole
// velocity so direction-dependent friction can act on it.
func SemiImplicit2(q, v, a geom.Vec2, dt float64, resolve func(vCons geom.Vec2) geom.Vec2) (geom.Vec2, geom.Vec2) {
	v = v.Add(a.Scale(dt))
	if resolve != nil {
		v = resolve(v)
	}
	return q.Add(v.Scale(dt)), v
}
