package components

import "github.com/charmbracelet/lipgloss"

// Common styles shared across UI components
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(FgPrimary)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(FgBorder).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(FgBorder)

	MutedStyle = lipgloss.NewStyle().
			Foreground(FgMuted)

	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(FgMuted).
			Italic(true)

	InactiveLevelStyle = lipgloss.NewStyle().
				Foreground(FgBorder).
				Faint(true)
)

// LevelStyle returns a bold style in the level's color
func LevelStyle(level string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(LevelColor(level)).Bold(true)
}

// HealthStyle returns a style in the health status color
func HealthStyle(status string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(HealthColor(status))
}
