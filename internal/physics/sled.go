package physics

import (
	"math"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/geom"
	"github.com/san-kum/simlab/internal/integrators"
)

// SledParams configures a block pushed across a rough floor.
type SledParams struct {
	Mass        float64
	Friction    float64
	Gravity     float64
	Push, Pull  float64 // applied force is (Push - Pull, 0)
	Width       float64
	Height      float64
	Restitution float64
	DragScale   float64
	Epsilon     float64
}

func DefaultSledParams() SledParams {
	return SledParams{
		Mass:        10,
		Friction:    0.3,
		Gravity:     9.81,
		Push:        50,
		Width:       20,
		Height:      8,
		Restitution: 0.5,
		DragScale:   0.5,
		Epsilon:     1e-4,
	}
}

func (p SledParams) Sanitize() SledParams {
	if !dynamo.Finite(p.Mass) || p.Mass < minMass {
		p.Mass = minMass
	}
	p.Friction = dynamo.Clamp(p.Friction, 0, 10)
	p.Gravity = dynamo.Clamp(p.Gravity, 0, 1000)
	p.Push = dynamo.Clamp(p.Push, 0, 1e6)
	p.Pull = dynamo.Clamp(p.Pull, 0, 1e6)
	if !dynamo.Finite(p.Width) || p.Width < 1 {
		p.Width = 1
	}
	if !dynamo.Finite(p.Height) || p.Height < 1 {
		p.Height = 1
	}
	p.Restitution = dynamo.Clamp(p.Restitution, 0, 1)
	if !dynamo.Finite(p.DragScale) || p.DragScale <= 0 {
		p.DragScale = 1
	}
	p.Epsilon = dynamo.Clamp(p.Epsilon, minEpsilon, 1)
	return p
}

// Applied is the external force on the sled.
func (p SledParams) Applied() geom.Vec2 { return geom.Vec2{X: p.Push - p.Pull} }

// Regime names the friction branch of the last step.
type Regime int

const (
	Static Regime = iota
	Kinetic
)

func (r Regime) String() string {
	if r == Static {
		return "static"
	}
	return "kinetic"
}

type SledState struct {
	Position     geom.Vec2
	Velocity     geom.Vec2
	Acceleration geom.Vec2
	Friction     geom.Vec2
	Dissipated   float64
	Regime       Regime
	Recoveries   int
}

// Sled is the force and friction model.
type Sled struct{}

func NewSled() *Sled { return &Sled{} }

func (sl *Sled) Init(p SledParams) SledState {
	p = p.Sanitize()
	return SledState{Position: geom.Vec2{X: p.Width * 0.1, Y: p.Height / 2}}
}

func (sl *Sled) Randomize(p SledParams, seed int64) SledState {
	p = p.Sanitize()
	r := newRand(seed)
	return SledState{Position: geom.Vec2{X: p.Width * r.Float64(), Y: p.Height * r.Float64()}}
}

func (sl *Sled) Kinetic(s SledState, p SledParams) float64 {
	return 0.5 * p.Mass * s.Velocity.Dot(s.Velocity)
}

// Step applies the friction law and advances with semi-implicit Euler.
func (sl *Sled) Step(s SledState, p SledParams, dt float64) SledState {
	p = p.Sanitize()
	prev := s
	m := p.Mass
	applied := p.Applied()
	muN := p.Friction * m * p.Gravity

	f, held := FrictionForce2(applied, s.Velocity, muN, p.Epsilon)
	static := s.Velocity.Length() <= p.Epsilon
	s.Friction = f
	s.Regime = Kinetic
	before := s.Velocity
	resolve := func(vCons geom.Vec2) geom.Vec2 {
		switch {
		case held:
			s.Regime = Static
			return geom.Vec2{}
		case static:
			before = vCons
			return vCons.Add(f.Scale(dt / m))
		}
		before = vCons
		return slowdown2(vCons, muN/m*dt)
	}
	pos, v := integrators.SemiImplicit2(s.Position, s.Velocity, applied.Scale(1/m), dt, resolve)
	s.Dissipated += math.Max(0, 0.5*m*(before.Dot(before)-v.Dot(v)))

	s.Acceleration = v.Sub(prev.Velocity).Scale(1 / dt)
	s.Position, s.Velocity = pos, v
	s = sl.walls(s, p)
	return sl.recover(s, prev, p)
}

// slowdown2 shortens v by dv along its direction without reversing it.
func slowdown2(v geom.Vec2, dv float64) geom.Vec2 {
	l := v.Length()
	if l <= dv {
		return geom.Vec2{}
	}
	return v.Scale((l - dv) / l)
}

func (sl *Sled) walls(s SledState, p SledParams) SledState {
	before := sl.Kinetic(s, p)
	hit := false
	if s.Position.X < 0 {
		s.Position.X, s.Velocity.X, hit = 0, math.Abs(s.Velocity.X)*p.Restitution, true
	} else if s.Position.X > p.Width {
		s.Position.X, s.Velocity.X, hit = p.Width, -math.Abs(s.Velocity.X)*p.Restitution, true
	}
	if s.Position.Y < 0 {
		s.Position.Y, s.Velocity.Y, hit = 0, math.Abs(s.Velocity.Y)*p.Restitution, true
	} else if s.Position.Y > p.Height {
		s.Position.Y, s.Velocity.Y, hit = p.Height, -math.Abs(s.Velocity.Y)*p.Restitution, true
	}
	if hit {
		s.Dissipated += math.Max(0, before-sl.Kinetic(s, p))
	}
	return s
}

func (sl *Sled) recover(s, prev SledState, p SledParams) SledState {
	x := dynamo.State{s.Position.X, s.Position.Y, s.Velocity.X, s.Velocity.Y, s.Acceleration.X, s.Acceleration.Y, s.Dissipated}
	last := dynamo.State{prev.Position.X, prev.Position.Y, prev.Velocity.X, prev.Velocity.Y, prev.Acceleration.X, prev.Acceleration.Y, prev.Dissipated}
	home := sl.Init(p)
	x, n := dynamo.Recover(x, last, dynamo.State{home.Position.X, home.Position.Y, 0, 0, 0, 0, 0})
	if n == 0 {
		return s
	}
	s.Position = geom.Vec2{X: dynamo.Clamp(x[0], 0, p.Width), Y: dynamo.Clamp(x[1], 0, p.Height)}
	s.Velocity = geom.Vec2{X: x[2], Y: x[3]}
	s.Acceleration = geom.Vec2{X: x[4], Y: x[5]}
	s.Dissipated = x[6]
	s.Recoveries = prev.Recoveries + n
	return s
}

// Apply places the sled on a tap and throws it on a release.
func (sl *Sled) Apply(s SledState, p SledParams, ev dynamo.Event) SledState {
	p = p.Sanitize()
	vp := SledViewport(ev.Surface, p)
	switch ev.Kind {
	case dynamo.Tap:
		s.Position = vp.Domain.Clamp(vp.ToSim(ev.At))
		s.Velocity, s.Acceleration = geom.Vec2{}, geom.Vec2{}
	case dynamo.Drag:
		s.Position = vp.Domain.Clamp(vp.ToSim(ev.From))
		s.Velocity, s.Acceleration = geom.Vec2{}, geom.Vec2{}
	case dynamo.Release:
		from, to := vp.ToSim(ev.From), vp.ToSim(ev.At)
		s.Position = vp.Domain.Clamp(from)
		s.Velocity = to.Sub(from).Scale(1 / p.DragScale)
		s.Acceleration = geom.Vec2{}
	}
	return s
}

func (sl *Sled) Diagnose(s SledState, p SledParams) dynamo.Diagnostics {
	p = p.Sanitize()
	applied := p.Applied()
	static := 0.0
	if s.Regime == Static {
		static = 1
	}
	return dynamo.Diagnostics{
		{Name: "applied", Value: applied.Length(), Unit: "N"},
		{Name: "friction", Value: s.Friction.Length(), Unit: "N"},
		{Name: "net", Value: applied.Add(s.Friction).Length(), Unit: "N"},
		{Name: "speed", Value: s.Velocity.Length(), Unit: "m/s"},
		{Name: "kinetic", Value: sl.Kinetic(s, p), Unit: "J"},
		{Name: "dissipated", Value: s.Dissipated, Unit: "J"},
		{Name: "static", Value: static},
		{Name: "position_x", Value: s.Position.X, Unit: "m"},
		{Name: "recoveries", Value: float64(s.Recoveries)},
	}
}
