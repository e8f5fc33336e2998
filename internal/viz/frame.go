package viz

import "github.com/san-kum/simlab/internal/geom"

type PrimKind int

const (
	Line PrimKind = iota
	Dot
	Disc
	Text
)

// Role tells the renderer which theme colour a primitive uses.
type Role int

const (
	RoleTrack Role = iota
	RoleBody
	RoleTrailA
	RoleTrailB
	RoleVector
	RoleField
	RoleLabel
	RoleGrid
)

// Prim is one drawing primitive. A and B are surface pixels; B is only
// used by lines.
type Prim struct {
	Kind   PrimKind
	A, B   geom.Vec2
	Radius float64
	Alpha  float64
	Role   Role
	Label  string
}

// Frame is everything a painter produced for one surface.
type Frame struct {
	Surface geom.Size
	Prims   []Prim
}

func NewFrame(s geom.Size) *Frame {
	return &Frame{Surface: s}
}

func (f *Frame) Line(a, b geom.Vec2, alpha float64, role Role) {
	f.Prims = append(f.Prims, Prim{Kind: Line, A: a, B: b, Alpha: alpha, Role: role})
}

func (f *Frame) Dot(a geom.Vec2, alpha float64, role Role) {
	f.Prims = append(f.Prims, Prim{Kind: Dot, A: a, Alpha: alpha, Role: role})
}

func (f *Frame) Disc(a geom.Vec2, r, alpha float64, role Role) {
	f.Prims = append(f.Prims, Prim{Kind: Disc, A: a, Radius: r, Alpha: alpha, Role: role})
}

func (f *Frame) Text(a geom.Vec2, s string, role Role) {
	f.Prims = append(f.Prims, Prim{Kind: Text, A: a, Alpha: 1, Role: role, Label: s})
}

// Count returns the number of primitives of kind k.
func (f *Frame) Count(k PrimKind) int {
	n := 0
	for _, p := range f.Prims {
		if p.Kind == k {
			n++
		}
	}
	return n
}

// View carries per-frame presentation inputs that are not model state.
type View struct {
	Surface     geom.Size
	Rotation    float64 // attractor yaw, advanced by the host each frame
	Pitch       float64
	TrailLength int // 0 draws the whole trail
	ShowVectors bool
}

// TrailAlpha is the opacity of a trail sample: the newest (age 0) is 1 and
// older samples fade linearly to 1/n.
func TrailAlpha(age, n int) float64 {
	if n <= 0 {
		return 0
	}
	return 1 - float64(age)/float64(n)
}
