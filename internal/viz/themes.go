package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a colour scheme for canvases and panels.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
}

// palette lists hex colours in Theme field order, Primary through Warning.
type palette [8]string

func newTheme(name string, p palette) Theme {
	c := func(i int) lipgloss.Color { return lipgloss.Color(p[i]) }
	return Theme{
		Name:       name,
		Primary:    c(0),
		Secondary:  c(1),
		Accent:     c(2),
		Background: c(3),
		Text:       c(4),
		Muted:      c(5),
		Success:    c(6),
		Warning:    c(7),
	}
}

var (
	ThemeCyberpunk = newTheme("cyberpunk", palette{"#ff00ff", "#00ffff", "#ffff00", "#0a0a0a", "#ffffff", "#666666", "#00ff00", "#ff8800"})
	ThemeMinimal   = newTheme("minimal", palette{"#ffffff", "#cccccc", "#0088ff", "#000000", "#ffffff", "#888888", "#00ff00", "#ffaa00"})
	ThemeOcean     = newTheme("ocean", palette{"#0077be", "#00a8cc", "#ffd700", "#001a33", "#e0f0ff", "#4488aa", "#00ff88", "#ffcc00"})
	ThemeSunset    = newTheme("sunset", palette{"#ff6b6b", "#feca57", "#ff9ff3", "#2d1b2e", "#fff5f5", "#8b6b8c", "#5fd068", "#ffc048"})

	// Themes is the cycle order of the t key.
	Themes = []Theme{ThemeCyberpunk, ThemeMinimal, ThemeOcean, ThemeSunset}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	if i := themeIndex(name); i >= 0 {
		return Themes[i]
	}
	return ThemeCyberpunk
}

// Next returns the theme after t in Themes, wrapping around.
func (t Theme) Next() Theme {
	return Themes[(themeIndex(t.Name)+1)%len(Themes)]
}

func themeIndex(name string) int {
	for i, th := range Themes {
		if th.Name == name {
			return i
		}
	}
	return -1
}

// RoleColor maps a primitive role to a theme colour.
func (t Theme) RoleColor(r Role) lipgloss.Color {
	switch r {
	case RoleBody:
		return t.Accent
	case RoleTrailA:
		return t.Primary
	case RoleTrailB:
		return t.Secondary
	case RoleVector:
		return t.Warning
	case RoleField:
		return t.Success
	case RoleLabel:
		return t.Text
	case RoleGrid:
		return t.Muted
	}
	return t.Secondary
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
