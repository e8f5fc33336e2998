package viz

import (
	"fmt"
	"math"

	"github.com/san-kum/simlab/internal/geom"
	"github.com/san-kum/simlab/internal/history"
	"github.com/san-kum/simlab/internal/physics"
)

const (
	bodyRadius  = 3.0
	labelMargin = 2.0
)

// PaintTrack draws the track profile and the bead.
func PaintTrack(s physics.TrackState, p physics.TrackParams, v View) *Frame {
	p = p.Sanitize()
	f := NewFrame(v.Surface)
	vp := physics.TrackViewport(v.Surface)

	samples := int(v.Surface.W/2) + 2
	prev := vp.ToScreen(geom.Vec2{X: 0, Y: p.Shape.Height(0)})
	for i := 1; i < samples; i++ {
		x := float64(i) / float64(samples-1)
		cur := vp.ToScreen(geom.Vec2{X: x, Y: p.Shape.Height(x)})
		f.Line(prev, cur, 0.6, RoleTrack)
		prev = cur
	}

	bead := vp.ToScreen(physics.TrackPoint(s, p))
	if v.ShowVectors && s.Velocity != 0 {
		slope := p.Shape.Slope(s.Position)
		dir := geom.Vec2{X: 1, Y: slope}.Normalize().Scale(s.Velocity * 0.25)
		tip := vp.ToScreen(physics.TrackPoint(s, p).Add(dir))
		f.Line(bead, tip, 0.9, RoleVector)
	}
	f.Disc(bead, bodyRadius, 1, RoleBody)
	f.Text(geom.Vec2{X: labelMargin, Y: labelMargin}, p.Shape.String(), RoleLabel)
	return f
}

// AttractorOrtho is the projection PaintAttractor uses for a view.
func AttractorOrtho(p physics.AttractorParams, v View) Ortho {
	radius := math.Max(10, 1.1*p.Rho)
	pivot := geom.Vec3{Z: math.Max(p.Rho-1, 0)}
	return FitOrtho(v.Surface, pivot, radius, physics.SurfacePadding, v.Rotation, v.Pitch)
}

// PaintAttractor draws both trails with age fading and the twin heads.
func PaintAttractor(s *physics.AttractorState, p physics.AttractorParams, v View) *Frame {
	p = p.Sanitize()
	f := NewFrame(v.Surface)
	o := AttractorOrtho(p, v)

	var segs []segment
	segs = appendTrail(segs, o, s.TrailA(), v.TrailLength, RoleTrailA)
	segs = appendTrail(segs, o, s.TrailB(), v.TrailLength, RoleTrailB)
	drawSegments(f, segs)

	a, _ := o.Project(s.A)
	b, _ := o.Project(s.B)
	f.Disc(a, bodyRadius-1, 1, RoleTrailA)
	f.Disc(b, bodyRadius-1, 1, RoleTrailB)
	f.Text(geom.Vec2{X: labelMargin, Y: labelMargin}, fmt.Sprintf("sep %.3g", s.Separation()), RoleLabel)
	return f
}

// appendTrail projects the newest limit samples. Age 0 is the newest.
func appendTrail(segs []segment, o Ortho, trail history.View[geom.Vec3], limit int, role Role) []segment {
	n := trail.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	last := trail.Len() - 1
	for age := 0; age+1 < n; age++ {
		a, da := o.Project(trail.At(last - age))
		b, db := o.Project(trail.At(last - age - 1))
		segs = append(segs, segment{a: a, b: b, depth: (da + db) / 2, alpha: TrailAlpha(age, n), role: role})
	}
	return segs
}

// PaintGauge draws one needle per lattice cell.
func PaintGauge(s *physics.GaugeState, p physics.GaugeParams, v View) *Frame {
	f := NewFrame(v.Surface)
	vp := physics.GaugeViewport(v.Surface, s.Cols, s.Rows)
	half := 0.4 * vp.ScaleX()
	for y := 0; y < s.Rows; y++ {
		for x := 0; x < s.Cols; x++ {
			c := vp.ToScreen(geom.Vec2{X: float64(x) + 0.5, Y: float64(s.Rows-y) - 0.5})
			sin, cos := math.Sincos(s.At(x, y))
			d := geom.Vec2{X: cos * half, Y: -sin * half}
			f.Line(c.Sub(d), c.Add(d), 0.6, RoleField)
			f.Dot(c.Add(d), 1, RoleVector)
		}
	}
	return f
}

// PaintSled draws the floor, the sled and optionally its force vectors.
func PaintSled(s physics.SledState, p physics.SledParams, v View) *Frame {
	p = p.Sanitize()
	f := NewFrame(v.Surface)
	vp := physics.SledViewport(v.Surface, p)

	corners := []geom.Vec2{{}, {X: p.Width}, {X: p.Width, Y: p.Height}, {Y: p.Height}}
	for i := range corners {
		f.Line(vp.ToScreen(corners[i]), vp.ToScreen(corners[(i+1)%len(corners)]), 0.3, RoleGrid)
	}

	c := vp.ToScreen(s.Position)
	if v.ShowVectors {
		scale := 0.2 * p.Width
		ref := math.Max(p.Applied().Length(), s.Friction.Length())
		if ref > 0 {
			tip := func(force geom.Vec2) geom.Vec2 {
				return vp.ToScreen(s.Position.Add(force.Scale(scale / ref)))
			}
			f.Line(c, tip(p.Applied()), 0.9, RoleVector)
			f.Line(c, tip(s.Friction), 0.9, RoleTrailB)
		}
	}
	f.Disc(c, bodyRadius, 1, RoleBody)
	f.Text(geom.Vec2{X: labelMargin, Y: labelMargin}, s.Regime.String(), RoleLabel)
	return f
}
