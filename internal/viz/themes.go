package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name     string
	Particle lipgloss.Color
	Link     lipgloss.Color
	Faint    lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
}

// Available themes
var (
	ThemeIndigo = Theme{
		Name:     "indigo",
		Particle: lipgloss.Color("#818cf8"),
		Link:     lipgloss.Color("#6366f1"),
		Faint:    lipgloss.Color("#3730a3"),
		Accent:   lipgloss.Color("#c7d2fe"),
		Text:     lipgloss.Color("#e0e7ff"),
		Muted:    lipgloss.Color("#475569"),
	}

	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Particle: lipgloss.Color("#ff00ff"), // Magenta
		Link:     lipgloss.Color("#00ffff"), // Cyan
		Faint:    lipgloss.Color("#006666"),
		Accent:   lipgloss.Color("#ffff00"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Particle: lipgloss.Color("#88ff88"),
		Link:     lipgloss.Color("#00cc00"), // Green phosphor
		Faint:    lipgloss.Color("#005500"),
		Accent:   lipgloss.Color("#ffff00"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Particle: lipgloss.Color("#ffffff"),
		Link:     lipgloss.Color("#cccccc"),
		Faint:    lipgloss.Color("#666666"),
		Accent:   lipgloss.Color("#0088ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Particle: lipgloss.Color("#00a8cc"),
		Link:     lipgloss.Color("#0077be"), // Ocean blue
		Faint:    lipgloss.Color("#0a3a5c"),
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Particle: lipgloss.Color("#feca57"),
		Link:     lipgloss.Color("#ff6b6b"), // Coral
		Faint:    lipgloss.Color("#8b6b8c"),
		Accent:   lipgloss.Color("#ff9ff3"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
	}

	DefaultTheme = ThemeIndigo

	// All available themes
	Themes = []Theme{
		ThemeIndigo,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return DefaultTheme, false
}

// NextTheme cycles through Themes, wrapping after the last one.
func NextTheme(current string) Theme {
	for i, t := range Themes {
		if t.Name == current {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return DefaultTheme
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
