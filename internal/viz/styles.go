package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the panel styles derived from a theme.
type Styles struct {
	Panel   lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Active  lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Hint    lipgloss.Style
	Graph   lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		Value:   lipgloss.NewStyle().Foreground(t.Text),
		Active:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Running: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Paused:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Hint:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Graph:   lipgloss.NewStyle().Foreground(t.Secondary),
	}
}

// ProgressBar renders a slider position in [0, 1].
func ProgressBar(percent float64, width int, t Theme) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := lipgloss.NewStyle().Foreground(t.Accent).Render(strings.Repeat("█", filled))
	return bar + lipgloss.NewStyle().Foreground(t.Muted).Render(strings.Repeat("░", width-filled))
}

// Sparkline renders values on one line, sampling to fit width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}
	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		idx := int((values[i*step] - lo) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return b.String()
}
