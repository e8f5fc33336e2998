package experiment

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/sim"
)

// Instance is a running simulation plus its slider bindings.
type Instance struct {
	sim.Runner
	def       *Definition
	positions map[string]float64
	apply     func(positions map[string]float64, cfg *config.Config)
	cfg       *config.Config
	logger    *slog.Logger
}

func (in *Instance) Definition() *Definition { return in.def }

// Sliders lists the tunable parameters in display order.
func (in *Instance) Sliders() []config.Slider { return in.def.Sliders }

// Position returns the current position of a slider.
func (in *Instance) Position(name string) float64 { return in.positions[name] }

// Value returns the parameter value a slider currently maps to.
func (in *Instance) Value(name string) float64 {
	if s, ok := in.def.Slider(name); ok {
		return s.Value(in.positions[name])
	}
	return 0
}

// SetSlider moves a slider and resets the simulation with the new
// parameters.
func (in *Instance) SetSlider(name string, pos float64) error {
	if _, ok := in.def.Slider(name); !ok {
		return fmt.Errorf("%w: %s.%s", dynamo.ErrUnknownParam, in.def.Name, name)
	}
	in.positions[name] = config.ClampPosition(pos)
	in.cfg.SetSlider(in.def.Name, name, in.positions[name])
	// Slider positions replace the physical overrides they cover.
	if params := in.cfg.Params[in.def.Name]; params != nil {
		delete(params, name)
	}
	in.apply(in.positions, in.cfg)
	in.logger.Debug("slider moved", "sim", in.def.Name, "slider", name, "pos", in.positions[name], "value", in.Value(name))
	return nil
}

// Nudge moves a slider by delta positions.
func (in *Instance) Nudge(name string, delta float64) error {
	return in.SetSlider(name, in.positions[name]+delta)
}

// Config returns the effective configuration, including slider moves.
func (in *Instance) Config() *config.Config { return in.cfg }
