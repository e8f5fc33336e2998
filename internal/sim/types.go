package sim

import (
	"time"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/viz"
)

// Metric folds the diagnostics of every fixed step into one value.
type Metric interface {
	Name() string
	Observe(d dynamo.Diagnostics, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every fixed step.
type Observer interface {
	OnStep(step int, t float64, d dynamo.Diagnostics)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step int, t float64, d dynamo.Diagnostics)

func (f ObserverFunc) OnStep(step int, t float64, d dynamo.Diagnostics) { f(step, t, d) }

// Painter draws one frame of a model.
type Painter[S any, P any] func(s S, p P, v viz.View) *viz.Frame

const (
	DefaultDt            = 1.0 / 120
	DefaultMaxFrameDelta = 250 * time.Millisecond
)

type Config struct {
	Dt            float64       // fixed step in seconds
	MaxFrameDelta time.Duration // wall time credited per Advance at most
}

func DefaultConfig() Config {
	return Config{Dt: DefaultDt, MaxFrameDelta: DefaultMaxFrameDelta}
}

func (c Config) normalize() Config {
	if !dynamo.Finite(c.Dt) || c.Dt <= 0 {
		c.Dt = DefaultDt
	}
	if c.MaxFrameDelta <= 0 {
		c.MaxFrameDelta = DefaultMaxFrameDelta
	}
	return c
}

// Runner is a Scheduler with its type parameters erased, for hosts that
// switch between simulations.
type Runner interface {
	Name() string
	Advance(wall time.Duration) int
	StepOnce()
	Pause()
	Resume()
	Toggle()
	Paused() bool
	Reset()
	Randomize(seed int64)
	Push(ev dynamo.Event)
	Diagnostics() dynamo.Diagnostics
	Frame(v viz.View) *viz.Frame
	Time() float64
	Steps() int
	Dt() float64
	Metrics() []Metric
	AddMetric(m Metric)
	AddObserver(o Observer)
}
