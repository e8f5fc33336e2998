package physics

import "github.com/san-kum/simlab/internal/geom"

// SurfacePadding is the pixel margin between the drawing surface edge and
// the simulation domain. Painters and interaction use the same viewports.
const SurfacePadding = 6.0

// TrackViewport frames x in [0,1] and the normalized height range.
func TrackViewport(s geom.Size) geom.Viewport {
	return geom.Viewport{
		Domain:  geom.Rect{Min: geom.Vec2{X: 0, Y: -0.1}, Max: geom.Vec2{X: 1, Y: 1.15}},
		Surface: s,
		Padding: SurfacePadding,
	}
}

// SledViewport frames the floor rectangle.
func SledViewport(s geom.Size, p SledParams) geom.Viewport {
	p = p.Sanitize()
	return geom.Viewport{
		Domain:  geom.Rect{Max: geom.Vec2{X: p.Width, Y: p.Height}},
		Surface: s,
		Padding: SurfacePadding,
	}
}

// GaugeViewport frames a cols×rows lattice with one unit per cell. Row 0
// is drawn at the top.
func GaugeViewport(s geom.Size, cols, rows int) geom.Viewport {
	return geom.Viewport{
		Domain:  geom.Rect{Max: geom.Vec2{X: float64(cols), Y: float64(rows)}},
		Surface: s,
		Padding: SurfacePadding,
	}
}
