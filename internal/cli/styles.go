// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/Veraticus/spent/internal/analytics"
	"github.com/Veraticus/spent/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette. Budget colors go from green (safe) through yellow and orange to
// red (over budget).
var (
	PrimaryColor = lipgloss.Color("#2ECC71")
	SuccessColor = lipgloss.Color("#27AE60")
	WarningColor = lipgloss.Color("#F1C40F")
	DangerColor  = lipgloss.Color("#E67E22")
	ErrorColor   = lipgloss.Color("#E74C3C")
	InfoColor    = lipgloss.Color("#5DADE2")
	SubtleColor  = lipgloss.Color("#7F8C8D")
	borderColor  = lipgloss.Color("#34495E")
)

// Shared text styles.
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginBottom(1)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	DangerStyle  = lipgloss.NewStyle().Foreground(DangerColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)

	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	MoneyIcon   = "💸"
	ChartIcon   = "📊"
	BellIcon    = "🔔"
	TrendUp     = "↑"
	TrendDown   = "↓"
)

func withIcon(style lipgloss.Style, icon, message string) string {
	return style.Render(icon + " " + message)
}

// FormatSuccess renders a confirmation line.
func FormatSuccess(message string) string { return withIcon(SuccessStyle, SuccessIcon, message) }

// FormatError renders an error line.
func FormatError(message string) string { return withIcon(ErrorStyle, ErrorIcon, message) }

// FormatWarning renders a warning line.
func FormatWarning(message string) string { return withIcon(WarningStyle, WarningIcon, message) }

// FormatInfo renders an informational line.
func FormatInfo(message string) string { return withIcon(InfoStyle, InfoIcon, message) }

// FormatTitle renders a section title.
func FormatTitle(title string) string { return withIcon(TitleStyle, MoneyIcon, title) }

// FormatPrompt renders an input prompt.
func FormatPrompt(prompt string) string {
	return promptStyle.Render(prompt + " → ")
}

// RenderBox draws content in a rounded box under a bold title.
func RenderBox(title, content string) string {
	heading := TitleStyle.UnsetMargins().Render(title)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}

// StatusStyle picks the style for a budget status.
func StatusStyle(status analytics.Status) lipgloss.Style {
	switch status {
	case analytics.StatusWarning:
		return WarningStyle
	case analytics.StatusDanger:
		return DangerStyle
	case analytics.StatusExceeded:
		return ErrorStyle
	default:
		return SuccessStyle
	}
}

// FormatStatus renders a budget status label in its color.
func FormatStatus(status analytics.Status) string {
	return StatusStyle(status).Render(string(status))
}

// CategoryColor converts a category's CSS hsl() color to a terminal color.
// Colors that do not parse fall back to the subtle gray.
func CategoryColor(color string) lipgloss.Color {
	var h, s, l float64
	if _, err := fmt.Sscanf(color, "hsl(%f, %f%%, %f%%)", &h, &s, &l); err != nil {
		return SubtleColor
	}
	return lipgloss.Color(colorful.Hsl(h, s/100, l/100).Clamped().Hex())
}

// FormatCategory renders "icon name" in the category's color.
func FormatCategory(cat model.Category) string {
	return lipgloss.NewStyle().
		Foreground(CategoryColor(cat.Color)).
		Render(cat.Icon + " " + cat.Name)
}
