package export

import (
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/simlab/internal/viz"
)

// FrameToSVG draws a frame's primitives as vector shapes. One surface
// pixel maps to scale SVG units.
func FrameToSVG(f *viz.Frame, theme viz.Theme, scale float64) string {
	if f == nil {
		return ""
	}
	if scale <= 0 {
		scale = 1
	}
	width := float64(f.Surface.W) * scale
	height := float64(f.Surface.H) * scale

	var sb strings.Builder
	header(&sb, width, height, theme)

	for _, p := range f.Prims {
		if !finite(p.A.X, p.A.Y) || (p.Kind == viz.Line && !finite(p.B.X, p.B.Y)) {
			continue
		}
		color := string(theme.RoleColor(p.Role))
		alpha := clampAlpha(p.Alpha)
		switch p.Kind {
		case viz.Line:
			fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.2f" stroke-width="%.1f"/>
`, p.A.X*scale, p.A.Y*scale, p.B.X*scale, p.B.Y*scale, color, alpha, scale)
		case viz.Dot:
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.2f"/>
`, p.A.X*scale, p.A.Y*scale, scale*0.6, color, alpha)
		case viz.Disc:
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.2f"/>
`, p.A.X*scale, p.A.Y*scale, p.Radius*scale, color, alpha)
		case viz.Text:
			fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="%.1f">`,
				p.A.X*scale, p.A.Y*scale, color, 6*scale)
			xml.EscapeText(&sb, []byte(p.Label))
			sb.WriteString("</text>\n")
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a rasterized braille canvas to SVG dots, keeping
// each cell's role colour and intensity.
func CanvasToSVG(canvas *viz.Canvas, theme viz.Theme, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	header(&sb, width, height, theme)

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			color := string(theme.RoleColor(canvas.Roles[row][col]))
			alpha := clampAlpha(canvas.Intensity[row][col])

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.2f"/>
`, cx, cy, dotRadius, color, alpha)
					}
				}
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func header(sb *strings.Builder, width, height float64, theme viz.Theme) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, string(theme.Background))
}

func clampAlpha(a float64) float64 {
	if math.IsNaN(a) || a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
