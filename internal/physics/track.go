package physics

import (
	"math"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/geom"
	"github.com/san-kum/simlab/internal/integrators"
)

const (
	minMass    = 1e-3
	minEpsilon = 1e-9
)

// TrackParams configures the energy track. Position is normalized to [0,1].
type TrackParams struct {
	Shape       Shape
	Mass        float64
	Gravity     float64
	Friction    float64
	Height      float64 // height scale applied to Shape.Height
	Restitution float64 // velocity kept on wall contact
	DragScale   float64 // seconds: v = drag distance / DragScale
	Epsilon     float64 // speed below which static friction applies
	Start       float64
}

func DefaultTrackParams() TrackParams {
	return TrackParams{
		Shape:       ShapeBump,
		Mass:        1.0,
		Gravity:     9.81,
		Friction:    0.0,
		Height:      0.25,
		Restitution: 0.8,
		DragScale:   0.5,
		Epsilon:     1e-4,
		Start:       0.1,
	}
}

// Sanitize clamps every field into its valid range.
func (p TrackParams) Sanitize() TrackParams {
	if !dynamo.Finite(p.Mass) || p.Mass < minMass {
		p.Mass = minMass
	}
	p.Gravity = dynamo.Clamp(p.Gravity, 0, 1000)
	p.Friction = dynamo.Clamp(p.Friction, 0, 10)
	p.Height = dynamo.Clamp(p.Height, 0, 100)
	p.Restitution = dynamo.Clamp(p.Restitution, 0, 1)
	if !dynamo.Finite(p.DragScale) || p.DragScale <= 0 {
		p.DragScale = 1
	}
	p.Epsilon = dynamo.Clamp(p.Epsilon, minEpsilon, 1)
	p.Start = dynamo.Clamp(p.Start, 0, 1)
	if _, ok := shapeNames[p.Shape]; !ok {
		p.Shape = ShapeFlat
	}
	return p
}

// TrackState is the bead on the track.
type TrackState struct {
	Position      float64
	Velocity      float64
	Dissipated    float64 // measured kinetic energy removed since the last reference reset
	InitialEnergy float64 // mechanical energy at the last reference reset
	Held          bool    // static friction held the bead on the last step
	Recoveries    int
}

// Track is the energy-conservation model.
type Track struct{}

func NewTrack() *Track { return &Track{} }

func (tr *Track) Init(p TrackParams) TrackState {
	p = p.Sanitize()
	return tr.rebase(TrackState{Position: p.Start}, p)
}

// rebase makes the current mechanical energy the new reference.
func (tr *Track) rebase(s TrackState, p TrackParams) TrackState {
	s.Dissipated = 0
	s.Held = false
	s.InitialEnergy = tr.Kinetic(s, p) + tr.Potential(s, p)
	return s
}

func (tr *Track) Kinetic(s TrackState, p TrackParams) float64 {
	return 0.5 * p.Mass * s.Velocity * s.Velocity
}

func (tr *Track) Potential(s TrackState, p TrackParams) float64 {
	return p.Mass * p.Gravity * p.Height * p.Shape.Height(s.Position)
}

// Step advances one fixed step with semi-implicit Euler. Friction is
// resolved on the velocity update; the position is then advanced with the
// new velocity and walls are handled last.
func (tr *Track) Step(s TrackState, p TrackParams, dt float64) TrackState {
	p = p.Sanitize()
	prev := s
	m := p.Mass

	slope := p.Height * p.Shape.Slope(s.Position)
	applied := -m * p.Gravity * slope
	normal := m * p.Gravity / math.Sqrt(1+slope*slope)
	muN := p.Friction * normal

	// A held bead does not move, so gravity does no work on it and only
	// its residual speed can join the ledger.
	static := muN > 0 && math.Abs(s.Velocity) <= p.Epsilon
	before := s.Velocity
	s.Held = false
	resolve := func(vCons float64) float64 {
		if !static {
			before = vCons
			return kineticSlowdown(vCons, muN/m*dt)
		}
		if math.Abs(applied) <= muN {
			s.Held = true
			return 0
		}
		before = vCons
		return vCons + FrictionForce(applied, s.Velocity, muN, p.Epsilon)/m*dt
	}
	pos, v := integrators.SemiImplicit(s.Position, s.Velocity, applied/m, dt, resolve)
	s.Dissipated += math.Max(0, 0.5*m*(before*before-v*v))

	s.Position, s.Velocity = pos, v
	s = tr.walls(s, p)

	return tr.recover(s, prev, p)
}

// walls clamps the bead into [0,1] and reflects it with restitution. The
// mechanical energy the impact removes joins the dissipated total.
func (tr *Track) walls(s TrackState, p TrackParams) TrackState {
	if s.Position >= 0 && s.Position <= 1 {
		return s
	}
	before := tr.Kinetic(s, p) + tr.Potential(s, p)
	if s.Position < 0 {
		s.Position = 0
		s.Velocity = math.Abs(s.Velocity) * p.Restitution
	} else {
		s.Position = 1
		s.Velocity = -math.Abs(s.Velocity) * p.Restitution
	}
	after := tr.Kinetic(s, p) + tr.Potential(s, p)
	s.Dissipated += math.Max(0, before-after)
	return s
}

func (tr *Track) recover(s, prev TrackState, p TrackParams) TrackState {
	x := dynamo.State{s.Position, s.Velocity, s.Dissipated}
	x, n := dynamo.Recover(x, dynamo.State{prev.Position, prev.Velocity, prev.Dissipated}, dynamo.State{p.Start, 0, 0})
	if n == 0 {
		return s
	}
	s.Position = dynamo.Clamp(x[0], 0, 1)
	s.Velocity = x[1]
	s.Recoveries = prev.Recoveries + n
	return tr.rebase(s, p)
}

// Apply handles pointer edits: a tap places the bead at rest, a drag holds
// it under the press point, a release launches it with a velocity
// proportional to the drag distance. Each edit resets the energy reference.
func (tr *Track) Apply(s TrackState, p TrackParams, ev dynamo.Event) TrackState {
	p = p.Sanitize()
	vp := TrackViewport(ev.Surface)
	switch ev.Kind {
	case dynamo.Tap:
		s.Position = dynamo.Clamp(vp.ToSim(ev.At).X, 0, 1)
		s.Velocity = 0
	case dynamo.Drag:
		s.Position = dynamo.Clamp(vp.ToSim(ev.From).X, 0, 1)
		s.Velocity = 0
	case dynamo.Release:
		from, to := vp.ToSim(ev.From), vp.ToSim(ev.At)
		s.Position = dynamo.Clamp(from.X, 0, 1)
		s.Velocity = (to.X - from.X) / p.DragScale
	default:
		return s
	}
	return tr.rebase(s, p)
}

// Randomize places the bead at rest at a seeded position.
func (tr *Track) Randomize(p TrackParams, seed int64) TrackState {
	p.Start = unitFloat(seed)
	return tr.Init(p)
}

func (tr *Track) Diagnose(s TrackState, p TrackParams) dynamo.Diagnostics {
	p = p.Sanitize()
	k, u := tr.Kinetic(s, p), tr.Potential(s, p)
	total := k + u + s.Dissipated
	held := 0.0
	if s.Held {
		held = 1
	}
	return dynamo.Diagnostics{
		{Name: "kinetic", Value: k, Unit: "J"},
		{Name: "potential", Value: u, Unit: "J"},
		{Name: "dissipated", Value: s.Dissipated, Unit: "J"},
		{Name: "total", Value: total, Unit: "J"},
		{Name: "initial", Value: s.InitialEnergy, Unit: "J"},
		{Name: "drift", Value: total - s.InitialEnergy, Unit: "J"},
		{Name: "position", Value: s.Position},
		{Name: "velocity", Value: s.Velocity, Unit: "1/s"},
		{Name: "height", Value: p.Height * p.Shape.Height(s.Position)},
		{Name: "held", Value: held},
		{Name: "recoveries", Value: float64(s.Recoveries)},
	}
}

// TrackPoint is the bead position in the track viewport's coordinates.
func TrackPoint(s TrackState, p TrackParams) geom.Vec2 {
	return geom.Vec2{X: s.Position, Y: p.Shape.Height(s.Position)}
}
