package dynamo

import "github.com/san-kum/simlab/internal/geom"

// EventKind distinguishes pointer gestures.
type EventKind int

const (
	// Tap is a press without movement.
	Tap EventKind = iota
	// Drag is pointer motion with the button held; From is the press point.
	Drag
	// Release ends a drag; From is the press point and At the release point.
	Release
)

func (k EventKind) String() string {
	switch k {
	case Tap:
		return "tap"
	case Drag:
		return "drag"
	case Release:
		return "release"
	}
	return "unknown"
}

// Event is a pointer interaction in drawing-surface pixel space.
type Event struct {
	Kind    EventKind
	At      geom.Vec2
	From    geom.Vec2
	Surface geom.Size
}

// Delta is the pointer travel since the press, in pixels.
func (e Event) Delta() geom.Vec2 { return e.At.Sub(e.From) }
