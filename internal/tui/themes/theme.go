// Package themes provides the color schemes of the dashboard.
package themes

import (
	"github.com/Veraticus/spent/internal/analytics"
	"github.com/Veraticus/spent/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style of the dashboard.
type Theme struct {
	// Colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
	Error      lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
	Muted      lipgloss.Color

	// Text styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Bold     lipgloss.Style
	Faint    lipgloss.Style

	// Tabs
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	// Component styles
	Panel     lipgloss.Style
	StatusBar lipgloss.Style
	Bar       lipgloss.Style
}

func build(t Theme) Theme {
	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Foreground).
		MarginBottom(1)
	t.Subtitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary)
	t.Normal = lipgloss.NewStyle().
		Foreground(t.Foreground)
	t.Bold = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Foreground)
	t.Faint = lipgloss.NewStyle().
		Foreground(t.Muted)
	t.ActiveTab = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(t.Primary).
		Padding(0, 2)
	t.InactiveTab = lipgloss.NewStyle().
		Foreground(t.Muted).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(t.Border).
		Padding(0, 2)
	t.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	t.StatusBar = lipgloss.NewStyle().
		Foreground(t.Muted)
	t.Bar = lipgloss.NewStyle().
		Foreground(t.Primary)
	return t
}

// Dark is the default theme.
var Dark = build(Theme{
	Primary:    lipgloss.Color("#7c3aed"),
	Secondary:  lipgloss.Color("#a78bfa"),
	Success:    lipgloss.Color("#10b981"),
	Warning:    lipgloss.Color("#f59e0b"),
	Danger:     lipgloss.Color("#f97316"),
	Error:      lipgloss.Color("#ef4444"),
	Foreground: lipgloss.Color("#fafafa"),
	Border:     lipgloss.Color("#404040"),
	Muted:      lipgloss.Color("#737373"),
})

// Light suits terminals with a light background.
var Light = build(Theme{
	Primary:    lipgloss.Color("#6d28d9"),
	Secondary:  lipgloss.Color("#7c3aed"),
	Success:    lipgloss.Color("#047857"),
	Warning:    lipgloss.Color("#b45309"),
	Danger:     lipgloss.Color("#c2410c"),
	Error:      lipgloss.Color("#b91c1c"),
	Foreground: lipgloss.Color("#171717"),
	Border:     lipgloss.Color("#d4d4d4"),
	Muted:      lipgloss.Color("#737373"),
})

// ForSetting returns the theme for a settings value. The system theme
// follows the terminal background.
func ForSetting(t model.Theme) Theme {
	switch t {
	case model.ThemeLight:
		return Light
	case model.ThemeDark:
		return Dark
	default:
		if lipgloss.HasDarkBackground() {
			return Dark
		}
		return Light
	}
}

// StatusColor returns the color of a budget status.
func (t Theme) StatusColor(status analytics.Status) lipgloss.Color {
	switch status {
	case analytics.StatusWarning:
		return t.Warning
	case analytics.StatusDanger:
		return t.Danger
	case analytics.StatusExceeded:
		return t.Error
	default:
		return t.Success
	}
}

// Status renders a budget status label in its color.
func (t Theme) Status(status analytics.Status) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(t.StatusColor(status)).
		Render(string(status))
}
