package metrics

import (
	"math"
	"testing"
)

func TestStability(t *testing.T) {
	m := NewStability()
	if m.Value() != 1 {
		t.Error("no samples should read as stable")
	}
	for _, r := range []float64{0, 0, 1, 1} {
		m.Observe(reading("recoveries", r), 0)
	}
	if m.Value() != 0.75 {
		t.Errorf("stability = %v, want 0.75", m.Value())
	}
}

func TestSeparationRate(t *testing.T) {
	m := NewSeparationRate()
	m.Observe(reading("separation", 1.0), 0)
	m.Observe(reading("separation", math.E*math.E), 2)
	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("rate = %v, want 1", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("reset should clear the rate")
	}
}

func TestLatest(t *testing.T) {
	m := NewAlignment()
	m.Observe(reading("alignment", 0.4), 0)
	m.Observe(reading("other", 0.9), 0)
	if m.Value() != 0.4 || m.Name() != "alignment" {
		t.Errorf("latest = %v", m.Value())
	}
}
