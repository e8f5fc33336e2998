package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/simlab/internal/dynamo"
)

const (
	DefaultSimulation    = "track"
	DefaultTheme         = "cyberpunk"
	DefaultDuration      = 10.0
	DefaultMaxFrameDelta = 0.25
	DefaultFPS           = 60
	DefaultRecordEvery   = 12
)

type Config struct {
	Simulation string          `yaml:"simulation"`
	Theme      string          `yaml:"theme"`
	Seed       int64           `yaml:"seed"`
	Duration   float64         `yaml:"duration"`
	Scheduler  SchedulerConfig `yaml:"scheduler"`
	Tuning     TuningConfig    `yaml:"tuning"`
	Track      TrackConfig     `yaml:"track"`
	Gauge      GaugeConfig     `yaml:"gauge"`
	Record     RecordConfig    `yaml:"record"`

	// Sliders holds slider positions in [0, 100] per simulation.
	Sliders map[string]map[string]float64 `yaml:"sliders,omitempty"`
	// Params holds physical parameter values per simulation. They win
	// over slider positions.
	Params map[string]map[string]float64 `yaml:"params,omitempty"`
}

type SchedulerConfig struct {
	Dt            map[string]float64 `yaml:"dt,omitempty"` // fixed step per simulation, seconds
	MaxFrameDelta float64            `yaml:"max_frame_delta"`
	FPS           int                `yaml:"fps"`
}

// TuningConfig overrides interaction constants. Zero keeps the model
// default.
type TuningConfig struct {
	Restitution float64 `yaml:"restitution"`
	DragScale   float64 `yaml:"drag_scale"`
}

type TrackConfig struct {
	Shape string `yaml:"shape"`
}

type GaugeConfig struct {
	Cols   int  `yaml:"cols"`
	Rows   int  `yaml:"rows"`
	Smooth bool `yaml:"smooth"`
}

type RecordConfig struct {
	Dir   string `yaml:"dir"`
	Every int    `yaml:"every"`
}

func DefaultConfig() *Config {
	return &Config{
		Simulation: DefaultSimulation,
		Theme:      DefaultTheme,
		Seed:       1,
		Duration:   DefaultDuration,
		Scheduler: SchedulerConfig{
			MaxFrameDelta: DefaultMaxFrameDelta,
			FPS:           DefaultFPS,
		},
		Track: TrackConfig{Shape: "bump"},
		Gauge: GaugeConfig{Cols: 48, Rows: 24},
		Record: RecordConfig{
			Dir:   "runs",
			Every: DefaultRecordEvery,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// Validate rejects values no simulation can run with. Physical parameter
// ranges are clamped by the models instead.
func (c *Config) Validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("%w: duration %v", dynamo.ErrParameterBounds, c.Duration)
	}
	if c.Scheduler.MaxFrameDelta < 0 {
		return fmt.Errorf("%w: max_frame_delta %v", dynamo.ErrParameterBounds, c.Scheduler.MaxFrameDelta)
	}
	if c.Scheduler.FPS < 0 {
		return fmt.Errorf("%w: fps %d", dynamo.ErrParameterBounds, c.Scheduler.FPS)
	}
	for sim, dt := range c.Scheduler.Dt {
		if dt < 0 {
			return fmt.Errorf("%w: %s dt %v", dynamo.ErrParameterBounds, sim, dt)
		}
	}
	for sim, sliders := range c.Sliders {
		for name, pos := range sliders {
			if pos < 0 || pos > SliderMax {
				return fmt.Errorf("%w: slider %s.%s = %v", dynamo.ErrParameterBounds, sim, name, pos)
			}
		}
	}
	return nil
}

// DtFor returns the configured fixed step for sim, or fallback.
func (c *Config) DtFor(sim string, fallback float64) float64 {
	if dt := c.Scheduler.Dt[sim]; dt > 0 {
		return dt
	}
	return fallback
}

func (c *Config) MaxFrameDelta() time.Duration {
	if c.Scheduler.MaxFrameDelta <= 0 {
		return time.Duration(DefaultMaxFrameDelta * float64(time.Second))
	}
	return time.Duration(c.Scheduler.MaxFrameDelta * float64(time.Second))
}

func (c *Config) FrameInterval() time.Duration {
	fps := c.Scheduler.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// SliderPosition returns the stored position of a slider.
func (c *Config) SliderPosition(sim, name string) (float64, bool) {
	pos, ok := c.Sliders[sim][name]
	return pos, ok
}

func (c *Config) SetSlider(sim, name string, pos float64) {
	if c.Sliders == nil {
		c.Sliders = make(map[string]map[string]float64)
	}
	if c.Sliders[sim] == nil {
		c.Sliders[sim] = make(map[string]float64)
	}
	c.Sliders[sim][name] = ClampPosition(pos)
}

func (c *Config) Param(sim, name string) (float64, bool) {
	v, ok := c.Params[sim][name]
	return v, ok
}

func (c *Config) SetParam(sim, name string, v float64) {
	if c.Params == nil {
		c.Params = make(map[string]map[string]float64)
	}
	if c.Params[sim] == nil {
		c.Params[sim] = make(map[string]float64)
	}
	c.Params[sim][name] = v
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Scheduler.Dt = cloneFlat(c.Scheduler.Dt)
	out.Sliders = cloneNested(c.Sliders)
	out.Params = cloneNested(c.Params)
	return &out
}

// Apply overlays the non-zero fields of p onto c.
func (c *Config) Apply(p *Config) {
	if p.Simulation != "" {
		c.Simulation = p.Simulation
	}
	if p.Theme != "" {
		c.Theme = p.Theme
	}
	if p.Seed != 0 {
		c.Seed = p.Seed
	}
	if p.Duration != 0 {
		c.Duration = p.Duration
	}
	if p.Tuning.Restitution != 0 {
		c.Tuning.Restitution = p.Tuning.Restitution
	}
	if p.Tuning.DragScale != 0 {
		c.Tuning.DragScale = p.Tuning.DragScale
	}
	if p.Track.Shape != "" {
		c.Track.Shape = p.Track.Shape
	}
	if p.Gauge.Cols != 0 {
		c.Gauge.Cols = p.Gauge.Cols
	}
	if p.Gauge.Rows != 0 {
		c.Gauge.Rows = p.Gauge.Rows
	}
	c.Gauge.Smooth = c.Gauge.Smooth || p.Gauge.Smooth
	for sim, dt := range p.Scheduler.Dt {
		if c.Scheduler.Dt == nil {
			c.Scheduler.Dt = make(map[string]float64)
		}
		c.Scheduler.Dt[sim] = dt
	}
	for sim, sliders := range p.Sliders {
		for name, pos := range sliders {
			c.SetSlider(sim, name, pos)
		}
	}
	for sim, params := range p.Params {
		for name, v := range params {
			c.SetParam(sim, name, v)
		}
	}
}

func cloneFlat(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneNested(m map[string]map[string]float64) map[string]map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]map[string]float64, len(m))
	for k, v := range m {
		out[k] = cloneFlat(v)
	}
	return out
}
