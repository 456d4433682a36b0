package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorTabOff   lipgloss.Color = "#7f849c"
	colorMantle   lipgloss.Color = "#181825"
	colorSurface0 lipgloss.Color = "#313244"
)

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText)

	headerAppStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(colorMantle)
	headerBarStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorText)

	activeTabStyle = lipgloss.NewStyle().
			Background(colorSurface0).
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Background(colorMantle).
				Foreground(colorTabOff).
				Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface0)

	titleStyle   = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	crumbStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	currentStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	filterStyle  = lipgloss.NewStyle().Foreground(colorText).Border(lipgloss.RoundedBorder(), false, true).BorderForeground(colorBorder).Padding(0, 1)
	linkStyle    = lipgloss.NewStyle().Foreground(colorAccent).Underline(true)
)
