package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette.
var (
	base     = lipgloss.Color("#1e1e2e")
	surface1 = lipgloss.Color("#45475a")
	text     = lipgloss.Color("#cdd6f4")
	subtext0 = lipgloss.Color("#a6adc8")
	lavender = lipgloss.Color("#b4befe")
	sapphire = lipgloss.Color("#74c7ec")
	green    = lipgloss.Color("#a6e3a1")
	yellow   = lipgloss.Color("#f9e2af")
	peach    = lipgloss.Color("#fab387")
	red      = lipgloss.Color("#f38ba8")

	appStyle = lipgloss.NewStyle().
			Foreground(text).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().Foreground(sapphire).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(subtext0)
	errorStyle = lipgloss.NewStyle().Foreground(red)

	clockStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(surface1).
			Padding(0, 1)

	displayStyle = lipgloss.NewStyle().
			Foreground(lavender).
			Bold(true).
			Padding(0, 1)

	bannerStyle = lipgloss.NewStyle().Foreground(yellow).Bold(true)

	inputStyle        = lipgloss.NewStyle().Foreground(text)
	inputFocusedStyle = lipgloss.NewStyle().Foreground(peach).Bold(true)
	inputLockedStyle  = lipgloss.NewStyle().Foreground(surface1)
)

// stateStyle colours the state badge.
func stateStyle(name string) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(base)

	switch name {
	case "RUNNING":
		return style.Background(green)
	case "PAUSED":
		return style.Background(peach)
	case "FINISHED":
		return style.Background(yellow)
	default:
		return style.Background(subtext0)
	}
}
