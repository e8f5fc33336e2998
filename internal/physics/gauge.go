package physics

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/geom"
	"github.com/san-kum/simlab/internal/integrators"
)

const maxLatticeSide = 512

// GaugeParams configures the relaxing angle lattice.
type GaugeParams struct {
	Cols, Rows    int
	FieldStrength float64
	GaugeFreedom  float64
	Rate          float64
	Seed          int64
	Smooth        bool    // opensimplex texture instead of uniform noise
	NoiseScale    float64 // cells per noise period when Smooth is set
}

func DefaultGaugeParams() GaugeParams {
	return GaugeParams{
		Cols:          48,
		Rows:          24,
		FieldStrength: 1,
		GaugeFreedom:  0,
		Rate:          6,
		Seed:          1,
		NoiseScale:    12,
	}
}

func (p GaugeParams) Sanitize() GaugeParams {
	if p.Cols < 1 {
		p.Cols = 1
	}
	if p.Rows < 1 {
		p.Rows = 1
	}
	if p.Cols > maxLatticeSide {
		p.Cols = maxLatticeSide
	}
	if p.Rows > maxLatticeSide {
		p.Rows = maxLatticeSide
	}
	p.FieldStrength = dynamo.Clamp(p.FieldStrength, 0, 100)
	p.GaugeFreedom = dynamo.Clamp(p.GaugeFreedom, 0, 1000)
	p.Rate = dynamo.Clamp(p.Rate, 0, 1000)
	if !dynamo.Finite(p.NoiseScale) || p.NoiseScale <= 0 {
		p.NoiseScale = 12
	}
	return p
}

// Alpha is the per-step relaxation fraction.
func (p GaugeParams) Alpha(dt float64) float64 {
	return dynamo.Clamp(p.Rate*p.FieldStrength*dt/(1+p.GaugeFreedom), 0, 1)
}

// GaugeState is a row-major lattice of angles in [0, 2π).
type GaugeState struct {
	Cols, Rows int
	Angles     []float64
	Sweeps     int
	Recoveries int

	next  []float64
	relax *integrators.Relaxation
}

// At returns the angle of cell (x, y).
func (s *GaugeState) At(x, y int) float64 { return s.Angles[y*s.Cols+x] }

// Gauge is the gauge-relaxation model.
type Gauge struct{}

func NewGauge() *Gauge { return &Gauge{} }

func (g *Gauge) Init(p GaugeParams) *GaugeState {
	p = p.Sanitize()
	return g.seeded(p, p.Seed)
}

func (g *Gauge) Randomize(p GaugeParams, seed int64) *GaugeState {
	return g.seeded(p.Sanitize(), seed)
}

func (g *Gauge) seeded(p GaugeParams, seed int64) *GaugeState {
	n := p.Cols * p.Rows
	s := &GaugeState{
		Cols:   p.Cols,
		Rows:   p.Rows,
		Angles: make([]float64, n),
		next:   make([]float64, n),
		relax:  integrators.NewRelaxation(),
	}
	if p.Smooth {
		noise := opensimplex.NewNormalized(seed)
		for y := 0; y < p.Rows; y++ {
			for x := 0; x < p.Cols; x++ {
				v := noise.Eval2(float64(x)/p.NoiseScale, float64(y)/p.NoiseScale)
				s.Angles[y*p.Cols+x] = dynamo.WrapAngle(2 * twoPi * v)
			}
		}
		return s
	}
	r := newRand(seed)
	for i := range s.Angles {
		s.Angles[i] = twoPi * r.Float64()
	}
	return s
}

// Step runs one relaxation sweep and swaps the buffers.
func (g *Gauge) Step(s *GaugeState, p GaugeParams, dt float64) *GaugeState {
	p = p.Sanitize()
	if s.Cols*s.Rows != len(s.Angles) || len(s.Angles) == 0 {
		return g.Init(p)
	}
	if len(s.next) != len(s.Angles) {
		s.next = make([]float64, len(s.Angles))
	}
	if s.relax == nil {
		s.relax = integrators.NewRelaxation()
	}
	s.relax.Sweep(s.Angles, s.next, s.Cols, s.Rows, p.Alpha(dt))
	s.Angles, s.next = s.next, s.Angles
	s.Sweeps++

	for i, a := range s.Angles {
		if dynamo.Finite(a) {
			continue
		}
		prev := s.next[i]
		if !dynamo.Finite(prev) {
			prev = 0
		}
		s.Angles[i] = dynamo.WrapAngle(prev)
		s.Recoveries++
	}
	return s
}

// Apply orients the cell under the press point toward the pointer.
func (g *Gauge) Apply(s *GaugeState, p GaugeParams, ev dynamo.Event) *GaugeState {
	if ev.Kind != dynamo.Tap && ev.Kind != dynamo.Drag {
		return s
	}
	vp := GaugeViewport(ev.Surface, s.Cols, s.Rows)
	from := g.latticePoint(vp, ev.From, s.Rows)
	cx, cy := int(math.Floor(from.X)), int(math.Floor(from.Y))
	if cx < 0 || cy < 0 || cx >= s.Cols || cy >= s.Rows {
		return s
	}
	target := g.latticePoint(vp, ev.At, s.Rows)
	d := target.Sub(geom.Vec2{X: float64(cx) + 0.5, Y: float64(cy) + 0.5})
	if d.Length() == 0 {
		return s
	}
	// Lattice rows grow downward on screen, so the angle uses screen y.
	s.Angles[cy*s.Cols+cx] = dynamo.WrapAngle(math.Atan2(-d.Y, d.X))
	return s
}

// latticePoint converts pixels into lattice coordinates with row 0 on top.
func (g *Gauge) latticePoint(vp geom.Viewport, px geom.Vec2, rows int) geom.Vec2 {
	p := vp.ToSim(px)
	return geom.Vec2{X: p.X, Y: float64(rows) - p.Y}
}

// Alignment is the order parameter |Σ e^{iθ}| / N in [0, 1].
func Alignment(angles []float64) float64 {
	if len(angles) == 0 {
		return 0
	}
	var sx, sy float64
	for _, a := range angles {
		sy += math.Sin(a)
		sx += math.Cos(a)
	}
	return math.Hypot(sx, sy) / float64(len(angles))
}

// Misalignment is the mean of 1 - cos Δθ over horizontal and vertical links.
func Misalignment(s *GaugeState) float64 {
	var sum float64
	links := 0
	for y := 0; y < s.Rows; y++ {
		for x := 0; x < s.Cols; x++ {
			a := s.At(x, y)
			if x+1 < s.Cols {
				sum += 1 - math.Cos(a-s.At(x+1, y))
				links++
			}
			if y+1 < s.Rows {
				sum += 1 - math.Cos(a-s.At(x, y+1))
				links++
			}
		}
	}
	if links == 0 {
		return 0
	}
	return sum / float64(links)
}

func (g *Gauge) Diagnose(s *GaugeState, p GaugeParams) dynamo.Diagnostics {
	mean, ok := dynamo.CircularMean(s.Angles)
	defined := 0.0
	if ok {
		defined = 1
	}
	return dynamo.Diagnostics{
		{Name: "alignment", Value: Alignment(s.Angles)},
		{Name: "misalignment", Value: Misalignment(s)},
		{Name: "mean_angle", Value: mean, Unit: "rad"},
		{Name: "mean_defined", Value: defined},
		{Name: "sweeps", Value: float64(s.Sweeps)},
		{Name: "recoveries", Value: float64(s.Recoveries)},
	}
}

const twoPi = 2 * math.Pi
