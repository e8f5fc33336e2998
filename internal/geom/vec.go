// Package geom holds the small vector types and the viewport mapping shared
// by models, painters and the interaction path.
package geom

import "math"

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Length() float64      { return math.Hypot(v.X, v.Y) }

// Normalize returns the unit vector, or the zero vector for zero input.
func (v Vec2) Normalize() Vec2 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec2{}
}

func (v Vec2) IsFinite() bool { return finite(v.X) && finite(v.Y) }

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) IsFinite() bool       { return finite(v.X) && finite(v.Y) && finite(v.Z) }

// Size is a drawing surface in pixels.
type Size struct {
	W, H float64
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
