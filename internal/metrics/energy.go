package metrics

import (
	"math"

	"github.com/san-kum/simlab/internal/dynamo"
)

// Energy is the mean of the "total" reading over observed steps.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(d dynamo.Diagnostics, t float64) {
	total, ok := d.Get("total")
	if !ok {
		return
	}
	e.totalEnergy += total
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the worst |drift| seen, relative to the energy reference
// when that is non-zero. Models report drift as total minus initial, with
// dissipated energy already counted in total.
type EnergyDrift struct {
	name     string
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(d dynamo.Diagnostics, t float64) {
	drift, ok := d.Get("drift")
	if !ok {
		return
	}
	e.samples++
	if ref := math.Abs(d.Must("initial")); ref > 0 {
		drift /= ref
	}
	e.maxDrift = math.Max(e.maxDrift, math.Abs(drift))
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.maxDrift = 0
	e.samples = 0
}

// Dissipation counts steps where the dissipated ledger went down without
// being reset to zero. A correct model keeps it at zero.
type Dissipation struct {
	name       string
	last       float64
	started    bool
	violations int
}

func NewDissipation() *Dissipation {
	return &Dissipation{name: "dissipation_violations"}
}

func (m *Dissipation) Name() string { return m.name }

func (m *Dissipation) Observe(d dynamo.Diagnostics, t float64) {
	v, ok := d.Get("dissipated")
	if !ok {
		return
	}
	if m.started && v < m.last && v != 0 {
		m.violations++
	}
	m.last, m.started = v, true
}

func (m *Dissipation) Value() float64 { return float64(m.violations) }

func (m *Dissipation) Reset() {
	m.last, m.started, m.violations = 0, false, 0
}
