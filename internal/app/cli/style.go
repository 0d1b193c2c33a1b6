package cli

import (
	"github.com/charmbracelet/lipgloss"

	"hatchlog/internal/app/ui/components"
	"hatchlog/internal/config"
)

// Typography for plain terminal output
var (
	headline  = lipgloss.NewStyle().Bold(true).Foreground(components.FgPrimary).MarginTop(1)
	emphasis  = lipgloss.NewStyle().Bold(true).Foreground(components.FgConnected)
	body      = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#E0E0E0"})
	muted     = lipgloss.NewStyle().Foreground(components.FgMuted)
	errorText = lipgloss.NewStyle().Bold(true).Foreground(components.FgDisconnected)
)

// Semantic styles
var (
	sectionHeader = headline.MarginBottom(1)
	commandName   = emphasis
	exampleCode   = lipgloss.NewStyle().Bold(true).Foreground(components.FgConnecting)

	appNameStyle    = lipgloss.NewStyle().Bold(true).Foreground(components.FgPrimary)
	appVersionStyle = muted
	titleWrapper    = lipgloss.NewStyle().MarginTop(1).MarginBottom(1)
)

// RenderTitle renders the app title block with name, version, and description
func RenderTitle() string {
	title := titleWrapper.Render(
		appNameStyle.Render(config.AppName) + appVersionStyle.Render(" v"+config.Version),
	)
	description := body.Render(config.AppDescription)

	return lipgloss.JoinVertical(lipgloss.Left, title, description)
}

// RenderError renders an error line for stderr
func RenderError(err error) string {
	return errorText.Render("Error:") + " " + err.Error()
}
