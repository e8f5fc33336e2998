package experiment

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/metrics"
	"github.com/san-kum/simlab/internal/physics"
	"github.com/san-kum/simlab/internal/sim"
	"github.com/san-kum/simlab/internal/viz"
)

// Definition describes one simulation the host can start.
type Definition struct {
	Name        string
	Description string
	Dt          float64
	Sliders     []config.Slider
	build       func(def *Definition, cfg *config.Config, logger *slog.Logger) *Instance
}

// Slider looks up a slider by parameter name.
func (d *Definition) Slider(name string) (config.Slider, bool) {
	for _, s := range d.Sliders {
		if s.Name == name {
			return s, true
		}
	}
	return config.Slider{}, false
}

type Registry struct {
	defs map[string]*Definition
}

func NewRegistry() *Registry {
	r := &Registry{defs: make(map[string]*Definition)}
	r.add(trackDefinition())
	r.add(lorenzDefinition())
	r.add(gaugeDefinition())
	r.add(sledDefinition())
	return r
}

func (r *Registry) add(d *Definition) { r.defs[d.Name] = d }

func (r *Registry) Get(name string) (*Definition, error) {
	d, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownSimulation, name)
	}
	return d, nil
}

// Names lists the registered simulations in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds an instance of the named simulation from cfg. The config is
// copied; slider moves on the instance do not touch the caller's value.
func (r *Registry) New(name string, cfg *config.Config, logger *slog.Logger) (*Instance, error) {
	d, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return d.build(d, cfg.Clone(), logger), nil
}

// DefaultMetrics are attached to every instance for its diagnostics.
func DefaultMetrics(name string) []sim.Metric {
	ms := []sim.Metric{metrics.NewStability(), metrics.NewLatest("recoveries", "recoveries")}
	switch name {
	case "track":
		ms = append(ms, metrics.NewEnergy(), metrics.NewEnergyDrift(), metrics.NewDissipation())
	case "lorenz":
		ms = append(ms, metrics.NewSeparationRate())
	case "gauge":
		ms = append(ms, metrics.NewAlignment())
	case "sled":
		ms = append(ms, metrics.NewDissipation())
	}
	return ms
}

// binding ties a slider to one field of P.
type binding[P any] struct {
	slider config.Slider
	get    func(P) float64
	set    func(*P, float64)
}

// define builds a Definition whose instances run model under a Scheduler.
func define[S any, P any](name, desc string, dt float64, model dynamo.Model[S, P], paint sim.Painter[S, P], defaults func(*config.Config) P, bindings []binding[P]) *Definition {
	d := &Definition{Name: name, Description: desc, Dt: dt}
	for _, b := range bindings {
		d.Sliders = append(d.Sliders, b.slider)
	}

	params := func(positions map[string]float64, cfg *config.Config) P {
		p := defaults(cfg)
		for _, b := range bindings {
			if pos, ok := positions[b.slider.Name]; ok {
				b.set(&p, b.slider.Value(pos))
			}
			if v, ok := cfg.Param(name, b.slider.Name); ok {
				b.set(&p, v)
			}
		}
		return p
	}

	d.build = func(d *Definition, cfg *config.Config, logger *slog.Logger) *Instance {
		base := defaults(cfg)
		positions := make(map[string]float64, len(bindings))
		for _, b := range bindings {
			positions[b.slider.Name] = b.slider.Position(b.get(base))
			if pos, ok := cfg.SliderPosition(name, b.slider.Name); ok {
				positions[b.slider.Name] = pos
			}
			if v, ok := cfg.Param(name, b.slider.Name); ok {
				positions[b.slider.Name] = b.slider.Position(v)
			}
		}

		schedCfg := sim.Config{Dt: cfg.DtFor(name, dt), MaxFrameDelta: cfg.MaxFrameDelta()}
		s := sim.New(name, model, paint, params(positions, cfg), schedCfg, logger)
		for _, m := range DefaultMetrics(name) {
			s.AddMetric(m)
		}
		return &Instance{
			Runner:    s,
			def:       d,
			positions: positions,
			apply: func(positions map[string]float64, cfg *config.Config) {
				s.SetParams(params(positions, cfg))
			},
			cfg:    cfg,
			logger: logger,
		}
	}
	return d
}

func trackDefinition() *Definition {
	defaults := func(cfg *config.Config) physics.TrackParams {
		p := physics.DefaultTrackParams()
		if shape, err := physics.ParseShape(cfg.Track.Shape); err == nil {
			p.Shape = shape
		}
		if cfg.Tuning.Restitution > 0 {
			p.Restitution = cfg.Tuning.Restitution
		}
		if cfg.Tuning.DragScale > 0 {
			p.DragScale = cfg.Tuning.DragScale
		}
		return p
	}
	return define("track", "bead on a shaped track with friction and an energy ledger", sim.DefaultDt,
		physics.NewTrack(), viz.PaintTrack, defaults,
		[]binding[physics.TrackParams]{
			{config.Slider{Name: "friction", Label: "Friction μ", Max: 1},
				func(p physics.TrackParams) float64 { return p.Friction },
				func(p *physics.TrackParams, v float64) { p.Friction = v }},
			{config.Slider{Name: "height", Label: "Height", Unit: "m", Min: 0.05, Max: 2},
				func(p physics.TrackParams) float64 { return p.Height },
				func(p *physics.TrackParams, v float64) { p.Height = v }},
			{config.Slider{Name: "mass", Label: "Mass", Unit: "kg", Min: 0.1, Max: 10, Scale: config.Log},
				func(p physics.TrackParams) float64 { return p.Mass },
				func(p *physics.TrackParams, v float64) { p.Mass = v }},
			{config.Slider{Name: "gravity", Label: "Gravity", Unit: "m/s²", Min: 1, Max: 25},
				func(p physics.TrackParams) float64 { return p.Gravity },
				func(p *physics.TrackParams, v float64) { p.Gravity = v }},
			{config.Slider{Name: "start", Label: "Start", Max: 1},
				func(p physics.TrackParams) float64 { return p.Start },
				func(p *physics.TrackParams, v float64) { p.Start = v }},
		})
}

func lorenzDefinition() *Definition {
	defaults := func(cfg *config.Config) physics.AttractorParams { return physics.DefaultAttractorParams() }
	return define("lorenz", "twin Lorenz trajectories diverging from a tiny offset", 0.005,
		physics.NewAttractor(), viz.PaintAttractor, defaults,
		[]binding[physics.AttractorParams]{
			{config.Slider{Name: "sigma", Label: "σ", Max: 30},
				func(p physics.AttractorParams) float64 { return p.Sigma },
				func(p *physics.AttractorParams, v float64) { p.Sigma = v }},
			{config.Slider{Name: "rho", Label: "ρ", Max: 60},
				func(p physics.AttractorParams) float64 { return p.Rho },
				func(p *physics.AttractorParams, v float64) { p.Rho = v }},
			{config.Slider{Name: "beta", Label: "β", Max: 6},
				func(p physics.AttractorParams) float64 { return p.Beta },
				func(p *physics.AttractorParams, v float64) { p.Beta = v }},
			{config.Slider{Name: "epsilon", Label: "ε", Min: 1e-6, Max: 1e-1, Scale: config.Log},
				func(p physics.AttractorParams) float64 { return p.Epsilon },
				func(p *physics.AttractorParams, v float64) { p.Epsilon = v }},
		})
}

func gaugeDefinition() *Definition {
	defaults := func(cfg *config.Config) physics.GaugeParams {
		p := physics.DefaultGaugeParams()
		if cfg.Gauge.Cols > 0 {
			p.Cols = cfg.Gauge.Cols
		}
		if cfg.Gauge.Rows > 0 {
			p.Rows = cfg.Gauge.Rows
		}
		p.Smooth = cfg.Gauge.Smooth
		p.Seed = cfg.Seed
		return p
	}
	return define("gauge", "angle lattice relaxing toward local alignment", 1.0/60,
		physics.NewGauge(), viz.PaintGauge, defaults,
		[]binding[physics.GaugeParams]{
			{config.Slider{Name: "field", Label: "Field", Max: 5},
				func(p physics.GaugeParams) float64 { return p.FieldStrength },
				func(p *physics.GaugeParams, v float64) { p.FieldStrength = v }},
			{config.Slider{Name: "freedom", Label: "Freedom", Max: 10},
				func(p physics.GaugeParams) float64 { return p.GaugeFreedom },
				func(p *physics.GaugeParams, v float64) { p.GaugeFreedom = v }},
			{config.Slider{Name: "rate", Label: "Rate", Unit: "1/s", Max: 30},
				func(p physics.GaugeParams) float64 { return p.Rate },
				func(p *physics.GaugeParams, v float64) { p.Rate = v }},
		})
}

func sledDefinition() *Definition {
	defaults := func(cfg *config.Config) physics.SledParams {
		p := physics.DefaultSledParams()
		if cfg.Tuning.Restitution > 0 {
			p.Restitution = cfg.Tuning.Restitution
		}
		if cfg.Tuning.DragScale > 0 {
			p.DragScale = cfg.Tuning.DragScale
		}
		return p
	}
	return define("sled", "block pushed across a rough floor", sim.DefaultDt,
		physics.NewSled(), viz.PaintSled, defaults,
		[]binding[physics.SledParams]{
			{config.Slider{Name: "mass", Label: "Mass", Unit: "kg", Min: 1, Max: 50},
				func(p physics.SledParams) float64 { return p.Mass },
				func(p *physics.SledParams, v float64) { p.Mass = v }},
			{config.Slider{Name: "friction", Label: "Friction μ", Max: 1},
				func(p physics.SledParams) float64 { return p.Friction },
				func(p *physics.SledParams, v float64) { p.Friction = v }},
			{config.Slider{Name: "push", Label: "Push", Unit: "N", Max: 200},
				func(p physics.SledParams) float64 { return p.Push },
				func(p *physics.SledParams, v float64) { p.Push = v }},
			{config.Slider{Name: "pull", Label: "Pull", Unit: "N", Max: 200},
				func(p physics.SledParams) float64 { return p.Pull },
				func(p *physics.SledParams, v float64) { p.Pull = v }},
		})
}
