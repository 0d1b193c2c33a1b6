package viewer

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"

	"hatchlog/internal/app/ui/components"
)

var matchStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("0")).
	Background(components.FgConnecting)

// Highlighter marks case-insensitive occurrences of the search query
type Highlighter struct {
	pattern *regexp.Regexp
}

// newHighlighter compiles a literal, case-insensitive pattern; an empty query highlights nothing
func newHighlighter(query string) Highlighter {
	if query == "" {
		return Highlighter{}
	}

	return Highlighter{pattern: regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))}
}

func (h Highlighter) highlight(text string) string {
	if h.pattern == nil {
		return text
	}

	return h.pattern.ReplaceAllStringFunc(text, func(match string) string {
		return matchStyle.Render(match)
	})
}
