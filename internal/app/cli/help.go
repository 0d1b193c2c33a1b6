package cli

import (
	"github.com/charmbracelet/lipgloss"
)

type usageLine struct {
	command string
	desc    string
}

var usageLines = []usageLine{
	{"hatchlog", "Follow the live log stream in the TUI"},
	{"hatchlog tail --no-ui", "Print entries as plain lines"},
	{"hatchlog tail -l warn,error", "Show only warnings and errors"},
	{"hatchlog health [pattern]", "Print the health snapshot"},
	{"hatchlog init", "Generate hatchlog.yaml template"},
	{"hatchlog version", "Show version"},
}

var exampleLines = []usageLine{
	{"hatchlog tail --search timeout", "Follow entries mentioning timeout"},
	{"hatchlog health 'shop/*'", "Health of every service in project shop"},
	{"hatchlog health api", "Health of every route named api"},
}

// renderHelp renders the usage screen
func renderHelp() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		RenderTitle(),
		sectionHeader.Render("Usage:"),
		renderLines(usageLines, commandName),
		sectionHeader.Render("Examples:"),
		renderLines(exampleLines, exampleCode),
	) + "\n"
}

func renderLines(lines []usageLine, style lipgloss.Style) string {
	width := 0
	for _, l := range lines {
		width = max(width, len(l.command))
	}

	rows := make([]string, len(lines))
	for i, l := range lines {
		cmd := style.Width(width + 4).Render(l.command)
		rows[i] = body.Render("  " + cmd + l.desc)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
