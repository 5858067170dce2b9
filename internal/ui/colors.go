package ui

import "github.com/charmbracelet/lipgloss"

const (
	Blue   = lipgloss.Color("#4db7ff")
	Green  = lipgloss.Color("#00a352")
	Red    = lipgloss.Color("#c42912")
	Yellow = lipgloss.Color("#c4b810")
	Orange = lipgloss.Color("#c27510")
)

// Theme holds the colours that change between light and dark mode.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Faded      lipgloss.Color
}

var (
	Dark = Theme{
		Name:       "dark",
		Background: lipgloss.Color("#000"),
		Primary:    lipgloss.Color("#fff"),
		Secondary:  lipgloss.Color("#888"),
		Faded:      lipgloss.Color("#555"),
	}
	Light = Theme{
		Name:       "light",
		Background: lipgloss.Color("#fff"),
		Primary:    lipgloss.Color("#111"),
		Secondary:  lipgloss.Color("#555"),
		Faded:      lipgloss.Color("#aaa"),
	}
)

// ThemeNamed falls back to Light for unknown names.
func ThemeNamed(name string) Theme {
	if name == Dark.Name {
		return Dark
	}
	return Light
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Name == Dark.Name {
		return Light
	}
	return Dark
}
