package physics

import (
	"fmt"
	"math"
	"strings"
)

// Shape selects the height profile of the energy track. Heights are
// normalized so the tallest point inside [0,1] is at most 1.
type Shape int

const (
	ShapeFlat Shape = iota
	ShapeBump
	ShapeDoubleWell
	ShapeRamp
)

var shapeNames = map[Shape]string{
	ShapeFlat:       "flat",
	ShapeBump:       "bump",
	ShapeDoubleWell: "double-well",
	ShapeRamp:       "ramp",
}

func (s Shape) String() string {
	if n, ok := shapeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// ParseShape accepts the names printed by String, case-insensitively.
func ParseShape(name string) (Shape, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range shapeNames {
		if n == name {
			return s, nil
		}
	}
	return ShapeFlat, fmt.Errorf("unknown track shape %q", name)
}

// Shapes lists every shape in declaration order.
func Shapes() []Shape { return []Shape{ShapeFlat, ShapeBump, ShapeDoubleWell, ShapeRamp} }

const (
	bumpCenter = 0.5
	bumpWidth  = 0.1

	rampEnd     = 0.3
	troughEnd   = 0.7
	rampTop     = 1.0
	troughRim   = 0.1
	troughDepth = 0.1
)

// Height is the normalized track height at x.
func (s Shape) Height(x float64) float64 {
	switch s {
	case ShapeBump:
		d := (x - bumpCenter) / bumpWidth
		return math.Exp(-0.5 * d * d)
	case ShapeDoubleWell:
		u := 4 * (x - 0.5)
		w := u*u - 1
		return w * w / 9
	case ShapeRamp:
		switch {
		case x < rampEnd:
			return troughRim + (rampTop-troughRim)*(1-x/rampEnd)
		case x < troughEnd:
			return troughRim - troughDepth*math.Sin(math.Pi*(x-rampEnd)/(troughEnd-rampEnd))
		default:
			return troughRim
		}
	}
	return 0
}

// Slope is dHeight/dx at x.
func (s Shape) Slope(x float64) float64 {
	switch s {
	case ShapeBump:
		d := (x - bumpCenter) / bumpWidth
		return -d / bumpWidth * math.Exp(-0.5*d*d)
	case ShapeDoubleWell:
		u := 4 * (x - 0.5)
		return 16 * u * (u*u - 1) / 9
	case ShapeRamp:
		switch {
		case x < rampEnd:
			return -(rampTop - troughRim) / rampEnd
		case x < troughEnd:
			k := math.Pi / (troughEnd - rampEnd)
			return -troughDepth * k * math.Cos(k*(x-rampEnd))
		default:
			return 0
		}
	}
	return 0
}
