package experiment

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/geom"
	"github.com/san-kum/simlab/internal/viz"
)

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	want := []string{"gauge", "lorenz", "sled", "track"}
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	if _, err := r.New("pendulum", nil, nil); !errors.Is(err, dynamo.ErrUnknownSimulation) {
		t.Errorf("expected ErrUnknownSimulation, got %v", err)
	}
}

func TestEverySimulationRuns(t *testing.T) {
	r := NewRegistry()
	for _, name := range r.Names() {
		t.Run(name, func(t *testing.T) {
			in, err := r.New(name, config.DefaultConfig(), nil)
			if err != nil {
				t.Fatalf("new failed: %v", err)
			}
			if in.Name() != name {
				t.Errorf("runner name %q", in.Name())
			}
			n := in.Advance(100 * time.Millisecond)
			if n == 0 || in.Steps() != n {
				t.Errorf("expected steps after advance, got %d (%d)", n, in.Steps())
			}
			if len(in.Diagnostics()) == 0 {
				t.Error("no diagnostics")
			}
			if len(in.Metrics()) < 2 {
				t.Errorf("expected default metrics, got %d", len(in.Metrics()))
			}
			f := in.Frame(viz.View{Surface: geom.Size{W: 120, H: 80}})
			if f == nil || len(f.Prims) == 0 {
				t.Error("painter drew nothing")
			}
			if len(in.Sliders()) == 0 {
				t.Error("no sliders")
			}
		})
	}
}

func TestSetSlider(t *testing.T) {
	cfg := config.DefaultConfig()
	in, err := NewRegistry().New("lorenz", cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	if got := in.Value("rho"); math.Abs(got-28) > 1e-9 {
		t.Errorf("default rho %f, want 28", got)
	}

	in.Advance(time.Second / 10)
	if err := in.SetSlider("rho", 50); err != nil {
		t.Fatal(err)
	}
	if got := in.Value("rho"); math.Abs(got-30) > 1e-9 {
		t.Errorf("rho at 50%% = %f, want 30", got)
	}
	if in.Steps() != 0 {
		t.Errorf("slider move should reset, steps = %d", in.Steps())
	}
	if pos, ok := in.Config().SliderPosition("lorenz", "rho"); !ok || pos != 50 {
		t.Errorf("instance config slider = %v %v", pos, ok)
	}
	if _, ok := cfg.SliderPosition("lorenz", "rho"); ok {
		t.Error("caller config was modified")
	}

	if err := in.SetSlider("rho", 250); err != nil {
		t.Fatal(err)
	}
	if in.Position("rho") != config.SliderMax {
		t.Errorf("position not clamped: %f", in.Position("rho"))
	}

	if err := in.SetSlider("gamma", 10); !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestParamsOverrideSliders(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SetSlider("track", "friction", 80)
	cfg.SetParam("track", "friction", 0.25)

	in, err := NewRegistry().New("track", cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := in.Value("friction"); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("friction %f, want physical override 0.25", got)
	}

	if err := in.Nudge("friction", 10); err != nil {
		t.Fatal(err)
	}
	if got := in.Value("friction"); math.Abs(got-0.35) > 1e-9 {
		t.Errorf("friction after nudge %f, want 0.35", got)
	}
	if _, ok := in.Config().Param("track", "friction"); ok {
		t.Error("slider move should drop the physical override")
	}
}

func TestGaugeLatticeFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Gauge.Cols, cfg.Gauge.Rows = 8, 4

	in, err := NewRegistry().New("gauge", cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	f := in.Frame(viz.View{Surface: geom.Size{W: 160, H: 80}})
	if n := f.Count(viz.Dot); n != 32 {
		t.Errorf("expected one needle per cell (32), got %d", n)
	}
}

func TestDtFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scheduler.Dt = map[string]float64{"sled": 0.01}

	in, err := NewRegistry().New("sled", cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if in.Dt() != 0.01 {
		t.Errorf("dt %f, want 0.01", in.Dt())
	}
	if n := in.Advance(100 * time.Millisecond); n != 10 {
		t.Errorf("expected 10 steps, got %d", n)
	}
}
