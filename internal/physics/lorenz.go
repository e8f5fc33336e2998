package physics

import (
	"math"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/geom"
	"github.com/san-kum/simlab/internal/history"
	"github.com/san-kum/simlab/internal/integrators"
)

// Lorenz is the right-hand side of the Lorenz system.
type Lorenz struct{ Sigma, Rho, Beta float64 }

func NewLorenz() *Lorenz        { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }
func (l *Lorenz) StateDim() int { return 3 }

// Derive calculates the Lorenz attractor derivatives.
func (l *Lorenz) Derive(s dynamo.State, _ dynamo.Control, _ float64) dynamo.State {
	return dynamo.State{l.Sigma * (s[1] - s[0]), s[0]*(l.Rho-s[2]) - s[1], s[0]*s[1] - l.Beta*s[2]}
}

const (
	DefaultTrailLength      = 3000
	DefaultSeparationLength = 800
)

// AttractorParams configures the twin-trajectory comparator.
type AttractorParams struct {
	Sigma, Rho, Beta float64
	Epsilon          float64 // initial offset of twin B along x
	Origin           geom.Vec3
	TrailLength      int
	SeparationLength int
}

func DefaultAttractorParams() AttractorParams {
	return AttractorParams{
		Sigma:            10,
		Rho:              28,
		Beta:             8.0 / 3.0,
		Epsilon:          1e-4,
		Origin:           geom.Vec3{X: 1, Y: 1, Z: 1},
		TrailLength:      DefaultTrailLength,
		SeparationLength: DefaultSeparationLength,
	}
}

func (p AttractorParams) Sanitize() AttractorParams {
	p.Sigma = dynamo.Clamp(p.Sigma, 0, 100)
	p.Rho = dynamo.Clamp(p.Rho, 0, 200)
	p.Beta = dynamo.Clamp(p.Beta, 0, 20)
	p.Epsilon = dynamo.Clamp(p.Epsilon, minEpsilon, 1)
	if !p.Origin.IsFinite() {
		p.Origin = geom.Vec3{X: 1, Y: 1, Z: 1}
	}
	if p.TrailLength < 1 {
		p.TrailLength = DefaultTrailLength
	}
	if p.SeparationLength < 1 {
		p.SeparationLength = DefaultSeparationLength
	}
	return p
}

// AttractorState holds both twins and their observation buffers. The
// buffers are written after integration and never read by Step.
type AttractorState struct {
	A, B       geom.Vec3
	Time       float64
	Steps      int
	Recoveries int

	trailA, trailB *history.Ring[geom.Vec3]
	separation     *history.Ring[float64]
}

func (s *AttractorState) TrailA() history.View[geom.Vec3]    { return s.trailA.View() }
func (s *AttractorState) TrailB() history.View[geom.Vec3]    { return s.trailB.View() }
func (s *AttractorState) Separations() history.View[float64] { return s.separation.View() }

// Separation is the current Euclidean distance between the twins.
func (s *AttractorState) Separation() float64 { return s.A.Sub(s.B).Length() }

func (s *AttractorState) record() {
	s.trailA.Push(s.A)
	s.trailB.Push(s.B)
	s.separation.Push(s.Separation())
}

// Attractor is the Lorenz twin comparator model.
type Attractor struct{}

func NewAttractor() *Attractor { return &Attractor{} }

func (a *Attractor) Init(p AttractorParams) *AttractorState {
	p = p.Sanitize()
	return a.start(p, p.Origin)
}

func (a *Attractor) start(p AttractorParams, origin geom.Vec3) *AttractorState {
	s := &AttractorState{
		A:          origin,
		B:          origin.Add(geom.Vec3{X: p.Epsilon}),
		trailA:     history.NewRing[geom.Vec3](p.TrailLength),
		trailB:     history.NewRing[geom.Vec3](p.TrailLength),
		separation: history.NewRing[float64](p.SeparationLength),
	}
	s.record()
	return s
}

// Step advances both twins with the same pure RK4 step.
func (a *Attractor) Step(s *AttractorState, p AttractorParams, dt float64) *AttractorState {
	p = p.Sanitize()
	sys := &Lorenz{Sigma: p.Sigma, Rho: p.Rho, Beta: p.Beta}

	s.A = a.advance(sys, s.A, s.Time, dt, p.Origin, &s.Recoveries)
	s.B = a.advance(sys, s.B, s.Time, dt, p.Origin.Add(geom.Vec3{X: p.Epsilon}), &s.Recoveries)
	s.Time += dt
	s.Steps++
	s.record()
	return s
}

func (a *Attractor) advance(sys dynamo.System, v geom.Vec3, t, dt float64, fallback geom.Vec3, recoveries *int) geom.Vec3 {
	prev := dynamo.State{v.X, v.Y, v.Z}
	next := integrators.RK4Step(sys, prev, nil, t, dt)
	next, n := dynamo.Recover(next, prev, dynamo.State{fallback.X, fallback.Y, fallback.Z})
	*recoveries += n
	return geom.Vec3{X: next[0], Y: next[1], Z: next[2]}
}

// Apply on a tap re-seeds twin B at A plus the configured offset and
// restarts the separation series, keeping both trails.
func (a *Attractor) Apply(s *AttractorState, p AttractorParams, ev dynamo.Event) *AttractorState {
	if ev.Kind != dynamo.Tap {
		return s
	}
	p = p.Sanitize()
	s.B = s.A.Add(geom.Vec3{X: p.Epsilon})
	s.separation.Clear()
	s.separation.Push(s.Separation())
	return s
}

// Randomize restarts both twins from a seeded point in the attractor's
// basin.
func (a *Attractor) Randomize(p AttractorParams, seed int64) *AttractorState {
	p = p.Sanitize()
	r := newRand(seed)
	origin := geom.Vec3{
		X: -15 + 30*r.Float64(),
		Y: -15 + 30*r.Float64(),
		Z: 5 + 35*r.Float64(),
	}
	return a.start(p, origin)
}

func (a *Attractor) Diagnose(s *AttractorState, p AttractorParams) dynamo.Diagnostics {
	sep := s.Separation()
	logSep := math.Inf(-1)
	if sep > 0 {
		logSep = math.Log10(sep)
	}
	return dynamo.Diagnostics{
		{Name: "separation", Value: sep},
		{Name: "log10_separation", Value: logSep},
		{Name: "time", Value: s.Time, Unit: "s"},
		{Name: "a_z", Value: s.A.Z},
		{Name: "b_z", Value: s.B.Z},
		{Name: "steps", Value: float64(s.Steps)},
		{Name: "recoveries", Value: float64(s.Recoveries)},
	}
}
