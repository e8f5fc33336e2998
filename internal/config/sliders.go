package config

import "math"

// SliderMax is the top of the slider position range [0, SliderMax].
const SliderMax = 100.0

type Scale int

const (
	Linear Scale = iota
	// Log maps positions geometrically; Min must be positive.
	Log
)

// Slider maps a position in [0, SliderMax] onto a parameter range.
type Slider struct {
	Name  string
	Label string
	Unit  string
	Min   float64
	Max   float64
	Scale Scale
}

// Value converts a slider position into a parameter value. Positions
// outside the range are clamped, so the endpoints map to Min and Max.
func (s Slider) Value(pos float64) float64 {
	u := ClampPosition(pos) / SliderMax
	if s.Scale == Log && s.Min > 0 && s.Max > 0 {
		return s.Min * math.Pow(s.Max/s.Min, u)
	}
	return s.Min + u*(s.Max-s.Min)
}

// Position is the inverse of Value, clamped to the slider range.
func (s Slider) Position(v float64) float64 {
	if s.Max == s.Min {
		return 0
	}
	var u float64
	if s.Scale == Log && s.Min > 0 && s.Max > 0 {
		if v <= 0 {
			return 0
		}
		u = math.Log(v/s.Min) / math.Log(s.Max/s.Min)
	} else {
		u = (v - s.Min) / (s.Max - s.Min)
	}
	return ClampPosition(u * SliderMax)
}

// ClampPosition limits pos to [0, SliderMax]; NaN maps to 0.
func ClampPosition(pos float64) float64 {
	if math.IsNaN(pos) || pos < 0 {
		return 0
	}
	if pos > SliderMax {
		return SliderMax
	}
	return pos
}
