package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/simlab/internal/geom"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a grid of braille cells. Each cell remembers the peak
// intensity and the role of the brightest primitive that touched it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Intensity     [][]float64
	Roles         [][]Role
	text          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:     w,
		Height:    h,
		Grid:      make([][]rune, h),
		Intensity: make([][]float64, h),
		Roles:     make([][]Role, h),
		text:      make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Intensity[i] = make([]float64, w)
		c.Roles[i] = make([]Role, w)
		c.text[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Size is the canvas in sub-pixels, the surface painters draw on.
func (c *Canvas) Size() geom.Size {
	return geom.Size{W: float64(c.Width * 2), H: float64(c.Height * 4)}
}

// Set lights sub-pixel (x, y) at full intensity.
func (c *Canvas) Set(x, y int) { c.Plot(x, y, 1, RoleBody) }

// Plot lights sub-pixel (x, y). The canvas size in sub-pixels is
// (Width*2) x (Height*4).
func (c *Canvas) Plot(x, y int, alpha float64, role Role) {
	if x < 0 || y < 0 || alpha <= 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if alpha > c.Intensity[row][col] {
		c.Intensity[row][col] = alpha
		c.Roles[row][col] = role
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Intensity[i][j] = 0
			c.Roles[i][j] = RoleTrack
			c.text[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, alpha float64, role Role) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Plot(x0, y0, alpha, role)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillDisc lights every sub-pixel within r of (cx, cy).
func (c *Canvas) FillDisc(cx, cy, r float64, alpha float64, role Role) {
	if r < 0.5 {
		r = 0.5
	}
	for y := int(math.Floor(cy - r)); y <= int(math.Ceil(cy+r)); y++ {
		for x := int(math.Floor(cx - r)); x <= int(math.Ceil(cx+r)); x++ {
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= r {
				c.Plot(x, y, alpha, role)
			}
		}
	}
}

// Label writes s into the cell row containing sub-pixel (x, y). Text
// replaces braille in the cells it covers.
func (c *Canvas) Label(x, y int, s string, role Role) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if row >= c.Height {
		return
	}
	for _, r := range s {
		if col >= c.Width {
			break
		}
		c.text[row][col] = r
		c.Intensity[row][col] = 1
		c.Roles[row][col] = role
		col++
	}
}

// Rasterize draws every primitive of f. Non-finite coordinates are
// skipped.
func (c *Canvas) Rasterize(f *Frame) {
	for _, p := range f.Prims {
		if !p.A.IsFinite() || (p.Kind == Line && !p.B.IsFinite()) {
			continue
		}
		switch p.Kind {
		case Line:
			c.DrawLine(round(p.A.X), round(p.A.Y), round(p.B.X), round(p.B.Y), p.Alpha, p.Role)
		case Dot:
			c.Plot(round(p.A.X), round(p.A.Y), p.Alpha, p.Role)
		case Disc:
			c.FillDisc(p.A.X, p.A.Y, p.Radius, p.Alpha, p.Role)
		case Text:
			c.Label(round(p.A.X), round(p.A.Y), p.Label, p.Role)
		}
	}
}

func (c *Canvas) cell(row, col int) rune {
	if t := c.text[row][col]; t != 0 {
		return t
	}
	return c.Grid[row][col]
}

// String is the plain-text rendering without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.Grid {
		for col := range c.Grid[row] {
			b.WriteRune(c.cell(row, col))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render styles each cell by role and intensity. Bright cells are drawn
// bold, dim cells faint. Runs of equal style share one lipgloss render.
func (c *Canvas) Render(t Theme) string {
	var b strings.Builder
	for row := range c.Grid {
		var run strings.Builder
		var cur cellStyle
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(cur.style(t).Render(run.String()))
			run.Reset()
		}
		for col := range c.Grid[row] {
			st := c.styleAt(row, col)
			if st != cur {
				flush()
				cur = st
			}
			run.WriteRune(c.cell(row, col))
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

type cellStyle struct {
	role  Role
	level int // 0 empty, 1 faint, 2 normal, 3 glow
}

func (c *Canvas) styleAt(row, col int) cellStyle {
	in := c.Intensity[row][col]
	switch {
	case in <= 0:
		return cellStyle{}
	case in < 0.35:
		return cellStyle{c.Roles[row][col], 1}
	case in < 0.75:
		return cellStyle{c.Roles[row][col], 2}
	}
	return cellStyle{c.Roles[row][col], 3}
}

func (s cellStyle) style(t Theme) lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.level == 0 {
		return st
	}
	st = st.Foreground(t.RoleColor(s.role))
	switch s.level {
	case 1:
		st = st.Faint(true)
	case 3:
		st = st.Bold(true)
	}
	return st
}

func round(x float64) int { return int(math.Round(x)) }

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
