package sim

import (
	"context"
	"log/slog"
	"time"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/viz"
)

// sanitizer is implemented by parameter types that clamp themselves.
type sanitizer[P any] interface {
	Sanitize() P
}

// Scheduler drives a model at a fixed timestep from variable wall-clock
// frames. Pointer events are queued and applied at the start of the next
// Advance or StepOnce, before any step runs.
type Scheduler[S any, P any] struct {
	name   string
	model  dynamo.Model[S, P]
	paint  Painter[S, P]
	cfg    Config
	step   time.Duration
	logger *slog.Logger

	params P
	state  S

	acc        time.Duration
	t          float64
	steps      int
	paused     bool
	queue      []dynamo.Event
	recoveries float64

	metrics   []Metric
	observers []Observer
}

func New[S any, P any](name string, model dynamo.Model[S, P], paint Painter[S, P], params P, cfg Config, logger *slog.Logger) *Scheduler[S, P] {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.normalize()
	s := &Scheduler[S, P]{
		name:   name,
		model:  model,
		paint:  paint,
		cfg:    cfg,
		step:   time.Duration(cfg.Dt * float64(time.Second)),
		logger: logger.With("sim", name),
		params: sanitize(params),
	}
	if s.step <= 0 {
		s.step = 1
	}
	s.Reset()
	return s
}

func sanitize[P any](p P) P {
	if sp, ok := any(p).(sanitizer[P]); ok {
		return sp.Sanitize()
	}
	return p
}

func (s *Scheduler[S, P]) Name() string       { return s.name }
func (s *Scheduler[S, P]) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }
func (s *Scheduler[S, P]) Metrics() []Metric  { return s.metrics }
func (s *Scheduler[S, P]) Dt() float64        { return s.cfg.Dt }
func (s *Scheduler[S, P]) Time() float64      { return s.t }
func (s *Scheduler[S, P]) Steps() int         { return s.steps }
func (s *Scheduler[S, P]) State() S           { return s.state }
func (s *Scheduler[S, P]) Params() P          { return s.params }
func (s *Scheduler[S, P]) Paused() bool       { return s.paused }
func (s *Scheduler[S, P]) Pause()             { s.paused = true }
func (s *Scheduler[S, P]) Resume()            { s.paused = false }
func (s *Scheduler[S, P]) Toggle()            { s.paused = !s.paused }
func (s *Scheduler[S, P]) Pending() int       { return len(s.queue) }

func (s *Scheduler[S, P]) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Push queues a pointer event.
func (s *Scheduler[S, P]) Push(ev dynamo.Event) { s.queue = append(s.queue, ev) }

// Advance credits wall time, capped at the configured maximum, and runs
// as many fixed steps as fit. The remainder carries to the next call. A
// paused scheduler applies queued events but neither steps nor accrues
// time. It returns the number of steps taken.
func (s *Scheduler[S, P]) Advance(wall time.Duration) int {
	s.drain()
	if s.paused {
		return 0
	}
	if wall < 0 {
		wall = 0
	}
	if wall > s.cfg.MaxFrameDelta {
		s.logger.Debug("frame delta capped", "wall", wall, "max", s.cfg.MaxFrameDelta)
		wall = s.cfg.MaxFrameDelta
	}
	s.acc += wall
	n := 0
	for s.acc >= s.step {
		s.acc -= s.step
		s.advance()
		n++
	}
	return n
}

// StepOnce applies queued events and runs exactly one fixed step, paused
// or not.
func (s *Scheduler[S, P]) StepOnce() {
	s.drain()
	s.advance()
}

func (s *Scheduler[S, P]) drain() {
	for _, ev := range s.queue {
		s.state = s.model.Apply(s.state, s.params, ev)
		s.logger.Debug("event applied", "kind", ev.Kind)
	}
	s.queue = s.queue[:0]
}

func (s *Scheduler[S, P]) advance() {
	s.state = s.model.Step(s.state, s.params, s.cfg.Dt)
	s.t += s.cfg.Dt
	s.steps++

	d := s.model.Diagnose(s.state, s.params)
	if r, ok := d.Get("recoveries"); ok && r > s.recoveries {
		s.logger.Debug("state recovered", "step", s.steps, "t", s.t, "dims", r-s.recoveries)
		s.recoveries = r
	}
	for _, m := range s.metrics {
		m.Observe(d, s.t)
	}
	for _, o := range s.observers {
		o.OnStep(s.steps, s.t, d)
	}
}

// Reset rebuilds the state from the current parameters and clears the
// clock, queue, accumulator and metrics. The pause flag is kept.
func (s *Scheduler[S, P]) Reset() {
	s.restart(s.model.Init(s.params))
}

// Randomize restarts from a seeded state when the model supports it.
func (s *Scheduler[S, P]) Randomize(seed int64) {
	if r, ok := s.model.(dynamo.Randomizer[S, P]); ok {
		s.restart(r.Randomize(s.params, seed))
		s.logger.Debug("randomized", "seed", seed)
		return
	}
	s.Reset()
}

// SetParams replaces the parameters and resets the simulation.
func (s *Scheduler[S, P]) SetParams(p P) {
	s.params = sanitize(p)
	s.Reset()
}

func (s *Scheduler[S, P]) restart(state S) {
	s.state = state
	s.acc = 0
	s.t = 0
	s.steps = 0
	s.recoveries = 0
	s.queue = s.queue[:0]
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Scheduler[S, P]) Diagnostics() dynamo.Diagnostics {
	return s.model.Diagnose(s.state, s.params)
}

// Frame paints the current state. It does not advance anything.
func (s *Scheduler[S, P]) Frame(v viz.View) *viz.Frame {
	if s.paint == nil {
		return viz.NewFrame(v.Surface)
	}
	return s.paint(s.state, s.params, v)
}

// Run steps r headlessly. fn, when set, is called every `every` steps
// with the step count and diagnostics; returning false stops the run.
func Run(ctx context.Context, r Runner, steps, every int, fn func(step int, d dynamo.Diagnostics) bool) error {
	if steps < 0 {
		return &dynamo.SimError{Step: 0, Message: "negative step count"}
	}
	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		r.StepOnce()
		if fn != nil && every > 0 && i%every == 0 {
			if !fn(i, r.Diagnostics()) {
				return nil
			}
		}
	}
	return nil
}
