package geom

// Rect is an axis-aligned region in simulation space.
type Rect struct {
	Min, Max Vec2
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Clamp returns p moved inside r.
func (r Rect) Clamp(p Vec2) Vec2 {
	return Vec2{clamp(p.X, r.Min.X, r.Max.X), clamp(p.Y, r.Min.Y, r.Max.Y)}
}

// Viewport maps a simulation-space domain linearly onto a pixel surface
// with uniform padding. Simulation y grows upward, pixel y grows downward.
type Viewport struct {
	Domain  Rect
	Surface Size
	Padding float64
}

func (v Viewport) inner() (w, h float64) {
	w = v.Surface.W - 2*v.Padding
	h = v.Surface.H - 2*v.Padding
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// ToScreen converts a simulation point to pixel coordinates.
func (v Viewport) ToScreen(p Vec2) Vec2 {
	w, h := v.inner()
	dw, dh := nonZero(v.Domain.Width()), nonZero(v.Domain.Height())
	u := (p.X - v.Domain.Min.X) / dw
	t := (p.Y - v.Domain.Min.Y) / dh
	return Vec2{v.Padding + u*w, v.Padding + (1-t)*h}
}

// ToSim converts pixel coordinates back to simulation space. The result
// is not clamped; pointers outside the padded rectangle map outside Domain.
func (v Viewport) ToSim(p Vec2) Vec2 {
	w, h := v.inner()
	u := (p.X - v.Padding) / w
	t := 1 - (p.Y-v.Padding)/h
	return Vec2{
		v.Domain.Min.X + u*v.Domain.Width(),
		v.Domain.Min.Y + t*v.Domain.Height(),
	}
}

// ScaleX is the number of pixels per simulation unit along x.
func (v Viewport) ScaleX() float64 {
	w, _ := v.inner()
	return w / nonZero(v.Domain.Width())
}

func nonZero(x float64) float64 {
	if x == 0 {
		return 1
	}
	return x
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
