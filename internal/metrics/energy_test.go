package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/physics"
)

func reading(kv ...any) dynamo.Diagnostics {
	var d dynamo.Diagnostics
	for i := 0; i+1 < len(kv); i += 2 {
		d = append(d, dynamo.Reading{Name: kv[i].(string), Value: kv[i+1].(float64)})
	}
	return d
}

func TestEnergyMean(t *testing.T) {
	m := NewEnergy()
	m.Observe(reading("total", 2.0), 0)
	m.Observe(reading("total", 4.0), 0)
	m.Observe(reading("kinetic", 100.0), 0)
	if m.Value() != 3 {
		t.Errorf("mean energy = %v, want 3", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDriftRelative(t *testing.T) {
	m := NewEnergyDrift()
	m.Observe(reading("drift", 0.1, "initial", 2.0), 0)
	m.Observe(reading("drift", -0.3, "initial", 2.0), 0)
	if math.Abs(m.Value()-0.15) > 1e-12 {
		t.Errorf("drift = %v, want 0.15", m.Value())
	}
	m.Reset()
	m.Observe(reading("drift", 0.5, "initial", 0.0), 0)
	if m.Value() != 0.5 {
		t.Errorf("zero reference should give absolute drift, got %v", m.Value())
	}
}

func TestDissipationViolations(t *testing.T) {
	m := NewDissipation()
	for _, v := range []float64{0, 0.5, 1, 0, 0.2, 0.1} {
		m.Observe(reading("dissipated", v), 0)
	}
	if m.Value() != 1 {
		t.Errorf("expected one violation, got %v", m.Value())
	}
}

func TestTrackDriftStaysSmall(t *testing.T) {
	tr := physics.NewTrack()
	p := physics.DefaultTrackParams()
	p.Friction = 0.05
	p.Start = 0.4
	s := tr.Init(p)

	drift, diss := NewEnergyDrift(), NewDissipation()
	for i := 0; i < 4000; i++ {
		s = tr.Step(s, p, 1.0/480)
		d := tr.Diagnose(s, p)
		drift.Observe(d, 0)
		diss.Observe(d, 0)
	}
	if diss.Value() != 0 {
		t.Errorf("dissipation decreased %v times", diss.Value())
	}
	if drift.Value() > 0.1 {
		t.Errorf("relative drift %v too large", drift.Value())
	}
}
