package config

import "sort"

var Presets = map[string]map[string]*Config{
	"track": {
		"bump": {
			Simulation: "track", Track: TrackConfig{Shape: "bump"},
			Params: map[string]map[string]float64{"track": {"friction": 0, "height": 0.25}},
		},
		"settle": {
			Simulation: "track", Track: TrackConfig{Shape: "double-well"}, Duration: 60,
			Params: map[string]map[string]float64{"track": {"friction": 0.02, "height": 1, "start": 0.51}},
		},
		"ramp": {
			Simulation: "track", Track: TrackConfig{Shape: "ramp"},
			Params: map[string]map[string]float64{"track": {"friction": 0.05, "height": 0.5, "start": 0.02}},
		},
	},
	"lorenz": {
		"chaotic": {
			Simulation: "lorenz", Duration: 30,
			Params: map[string]map[string]float64{"lorenz": {"rho": 28, "epsilon": 1e-4}},
		},
		"stable": {
			Simulation: "lorenz", Duration: 20,
			Params: map[string]map[string]float64{"lorenz": {"rho": 5, "epsilon": 1e-4}},
		},
		"transient": {
			Simulation: "lorenz", Duration: 60,
			Params: map[string]map[string]float64{"lorenz": {"rho": 22, "epsilon": 1e-3}},
		},
	},
	"gauge": {
		"calm": {
			Simulation: "gauge", Gauge: GaugeConfig{Smooth: true},
			Params: map[string]map[string]float64{"gauge": {"field": 1, "freedom": 0, "rate": 6}},
		},
		"sluggish": {
			Simulation: "gauge",
			Params: map[string]map[string]float64{"gauge": {"field": 0.5, "freedom": 4, "rate": 3}},
		},
	},
	"sled": {
		"stuck": {
			Simulation: "sled",
			Params: map[string]map[string]float64{"sled": {"push": 20, "friction": 0.3}},
		},
		"breakaway": {
			Simulation: "sled",
			Params: map[string]map[string]float64{"sled": {"push": 50, "friction": 0.3}},
		},
		"ice": {
			Simulation: "sled", Tuning: TuningConfig{Restitution: 0.9},
			Params: map[string]map[string]float64{"sled": {"push": 5, "friction": 0.02}},
		},
	},
}

func GetPreset(sim, preset string) *Config {
	simPresets, ok := Presets[sim]
	if !ok {
		return nil
	}
	cfg, ok := simPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns the preset names for sim in sorted order.
func ListPresets(sim string) []string {
	simPresets, ok := Presets[sim]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(simPresets))
	for name := range simPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
