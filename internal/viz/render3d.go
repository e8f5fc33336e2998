package viz

import (
	"math"
	"sort"

	"github.com/san-kum/simlab/internal/geom"
)

// Ortho is a rotating orthographic projection. Points are rotated about
// Pivot by Yaw (around z) and then Pitch (around the rotated x axis),
// scaled, and placed with Center at the surface origin of the result.
type Ortho struct {
	Yaw, Pitch float64
	Scale      float64
	Pivot      geom.Vec3
	Center     geom.Vec2
}

// Rotate returns p relative to the pivot in camera space; y points out of
// the screen.
func (o Ortho) Rotate(p geom.Vec3) geom.Vec3 {
	p = p.Sub(o.Pivot)
	cy, sy := math.Cos(o.Yaw), math.Sin(o.Yaw)
	p.X, p.Y = p.X*cy-p.Y*sy, p.X*sy+p.Y*cy
	cp, sp := math.Cos(o.Pitch), math.Sin(o.Pitch)
	p.Y, p.Z = p.Y*cp-p.Z*sp, p.Y*sp+p.Z*cp
	return p
}

// Project maps p to surface pixels. depth grows away from the viewer.
func (o Ortho) Project(p geom.Vec3) (px geom.Vec2, depth float64) {
	r := o.Rotate(p)
	return geom.Vec2{X: o.Center.X + r.X*o.Scale, Y: o.Center.Y - r.Z*o.Scale}, r.Y
}

// FitOrtho centres a projection on surface s so a sphere of the given
// radius around pivot fits with the padding.
func FitOrtho(s geom.Size, pivot geom.Vec3, radius, padding, yaw, pitch float64) Ortho {
	side := math.Min(s.W, s.H) - 2*padding
	if side < 1 {
		side = 1
	}
	if radius <= 0 {
		radius = 1
	}
	return Ortho{
		Yaw:    yaw,
		Pitch:  pitch,
		Scale:  side / (2 * radius),
		Pivot:  pivot,
		Center: geom.Vec2{X: s.W / 2, Y: s.H / 2},
	}
}

// segment is a projected trail edge waiting for depth sorting.
type segment struct {
	a, b  geom.Vec2
	depth float64
	alpha float64
	role  Role
}

// drawSegments appends segments to f ordered far to near.
func drawSegments(f *Frame, segs []segment) {
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].depth > segs[j].depth })
	for _, s := range segs {
		f.Line(s.a, s.b, s.alpha, s.role)
	}
}
