package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/simlab/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Simulation != "track" {
		t.Errorf("expected simulation track, got %s", cfg.Simulation)
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.MaxFrameDelta() != 250*time.Millisecond {
		t.Errorf("max frame delta = %v", cfg.MaxFrameDelta())
	}
	if cfg.FrameInterval() != time.Second/60 {
		t.Errorf("frame interval = %v", cfg.FrameInterval())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simlab.yaml")
	cfg := DefaultConfig()
	cfg.Simulation = "lorenz"
	cfg.Scheduler.Dt = map[string]float64{"lorenz": 0.005}
	cfg.SetSlider("lorenz", "rho", 40)
	cfg.SetParam("lorenz", "epsilon", 1e-6)

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if got.DtFor("lorenz", 0.01) != 0.005 || got.DtFor("track", 0.01) != 0.01 {
		t.Error("per-simulation dt lookup failed")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	cfg := DefaultConfig()
	cfg.Sliders = map[string]map[string]float64{"track": {"friction": 140}}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestSliderEndpoints(t *testing.T) {
	tests := []struct {
		name   string
		slider Slider
	}{
		{"linear", Slider{Min: -2, Max: 8}},
		{"log", Slider{Min: 1e-6, Max: 1e-1, Scale: Log}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.slider
			if got := s.Value(0); math.Abs(got-s.Min) > 1e-12*math.Abs(s.Min)+1e-15 {
				t.Errorf("Value(0) = %v, want %v", got, s.Min)
			}
			if got := s.Value(SliderMax); math.Abs(got-s.Max) > 1e-12*math.Abs(s.Max) {
				t.Errorf("Value(max) = %v, want %v", got, s.Max)
			}
			if s.Value(-10) != s.Value(0) || s.Value(500) != s.Value(SliderMax) {
				t.Error("positions outside the range should clamp")
			}
			for _, pos := range []float64{0, 12.5, 50, 99} {
				if back := s.Position(s.Value(pos)); math.Abs(back-pos) > 1e-9 {
					t.Errorf("Position(Value(%v)) = %v", pos, back)
				}
			}
		})
	}

	log := Slider{Min: 1e-6, Max: 1e-1, Scale: Log}
	if mid := log.Value(60); math.Abs(mid-1e-3) > 1e-15 {
		t.Errorf("log slider at 60%% = %v, want 1e-3", mid)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("lorenz", "stable")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if v, _ := cfg.Param("lorenz", "rho"); v != 5 {
		t.Errorf("expected rho 5, got %v", v)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("lorenz", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "chaotic") != nil {
		t.Error("expected nil for nonexistent simulation")
	}
}

func TestListPresets(t *testing.T) {
	if diff := cmp.Diff([]string{"breakaway", "ice", "stuck"}, ListPresets("sled")); diff != "" {
		t.Errorf("sled presets (-want +got):\n%s", diff)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent simulation")
	}
}

func TestApplyPresetDoesNotAlias(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apply(GetPreset("track", "settle"))
	if cfg.Track.Shape != "double-well" || cfg.Duration != 60 {
		t.Errorf("preset not applied: %+v", cfg)
	}
	cfg.SetParam("track", "friction", 0.5)
	if v, _ := GetPreset("track", "settle").Param("track", "friction"); v != 0.02 {
		t.Error("changing the config modified the preset")
	}

	clone := cfg.Clone()
	clone.SetParam("track", "height", 3)
	if v, _ := cfg.Param("track", "height"); v != 1 {
		t.Error("clone shares maps with the original")
	}
}
