package metrics

import (
	"math"

	"github.com/san-kum/simlab/internal/dynamo"
)

// Stability is the fraction of steps that needed no state recovery.
type Stability struct {
	name       string
	last       float64
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{name: "stability"}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(d dynamo.Diagnostics, t float64) {
	s.samples++
	r := d.Must("recoveries")
	if r > s.last {
		s.violations++
	}
	s.last = r
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.last = 0
	s.violations = 0
	s.samples = 0
}

// SeparationRate is the mean growth rate of ln(separation) per second
// between the first and the latest observation.
type SeparationRate struct {
	name         string
	t0, t1       float64
	ln0, ln1     float64
	observations int
}

func NewSeparationRate() *SeparationRate {
	return &SeparationRate{name: "separation_rate"}
}

func (m *SeparationRate) Name() string { return m.name }

func (m *SeparationRate) Observe(d dynamo.Diagnostics, t float64) {
	sep, ok := d.Get("separation")
	if !ok || sep <= 0 {
		return
	}
	if m.observations == 0 {
		m.t0, m.ln0 = t, math.Log(sep)
	}
	m.t1, m.ln1 = t, math.Log(sep)
	m.observations++
}

func (m *SeparationRate) Value() float64 {
	if m.observations < 2 || m.t1 == m.t0 {
		return 0
	}
	return (m.ln1 - m.ln0) / (m.t1 - m.t0)
}

func (m *SeparationRate) Reset() {
	*m = SeparationRate{name: m.name}
}

// Latest reports the most recent value of one reading.
type Latest struct {
	name, reading string
	value         float64
}

func NewLatest(name, reading string) *Latest {
	return &Latest{name: name, reading: reading}
}

func NewAlignment() *Latest { return NewLatest("alignment", "alignment") }

func (m *Latest) Name() string { return m.name }

func (m *Latest) Observe(d dynamo.Diagnostics, t float64) {
	if v, ok := d.Get(m.reading); ok {
		m.value = v
	}
}

func (m *Latest) Value() float64 { return m.value }
func (m *Latest) Reset()         { m.value = 0 }
