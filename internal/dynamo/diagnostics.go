package dynamo

// Reading is one named scalar readout.
type Reading struct {
	Name  string
	Value float64
	Unit  string
}

// Diagnostics is an ordered set of readouts. Order is stable per model so
// hosts can lay out panels and CSV columns without sorting.
type Diagnostics []Reading

// Get returns the value named n.
func (d Diagnostics) Get(n string) (float64, bool) {
	for _, r := range d {
		if r.Name == n {
			return r.Value, true
		}
	}
	return 0, false
}

// Must is Get without the presence flag; absent names read as zero.
func (d Diagnostics) Must(n string) float64 {
	v, _ := d.Get(n)
	return v
}

func (d Diagnostics) Names() []string {
	names := make([]string, len(d))
	for i, r := range d {
		names[i] = r.Name
	}
	return names
}
