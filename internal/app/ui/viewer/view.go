package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"hatchlog/internal/app/health"
	"hatchlog/internal/app/logs"
	"hatchlog/internal/app/ui/components"
)

// Continuation markers for wrapped lines
const (
	wrapMiddle = " │ "
	wrapLast   = " └ "
	healthDot  = "●"
)

// View returns the rendered viewer
func (m Model) View() string {
	if !m.ui.ready {
		return "Initializing…"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderFooter(),
	)
}

// refresh rebuilds the viewport content from a filtered buffer snapshot
func (m *Model) refresh() {
	m.state.dirty = false

	entries := m.tailer.Entries()
	visible := logs.Apply(entries, m.state.filter)

	m.state.total = len(entries)
	m.state.visible = len(visible)

	width := m.ui.viewport.Width
	if width <= 0 {
		width = components.DefaultViewportWidth
	}

	highlighter := newHighlighter(m.state.filter.Query())

	var b strings.Builder
	for i, entry := range visible {
		if i > 0 {
			b.WriteString("\n")
		}

		b.WriteString(m.renderEntry(entry, highlighter, width))
	}

	offset := m.ui.viewport.YOffset
	m.ui.viewport.SetContent(b.String())

	if m.ui.autoscroll {
		m.ui.viewport.GotoBottom()
		return
	}

	m.ui.viewport.SetYOffset(offset)
}

// renderEntry renders one entry, wrapping long lines with continuation markers
func (m *Model) renderEntry(entry logs.Entry, h Highlighter, width int) string {
	var prefix strings.Builder

	if entry.Timestamp != "" {
		prefix.WriteString(components.MutedStyle.Render(logs.FormatTime(entry.Timestamp)))
		prefix.WriteString(" ")
	}

	prefix.WriteString(components.LevelStyle(string(entry.Level)).Render(fmt.Sprintf("%-5s", strings.ToUpper(string(entry.Level)))))
	prefix.WriteString(" ")

	if dot, ok := m.healthDot(entry); ok {
		prefix.WriteString(dot)
		prefix.WriteString(" ")
	}

	if source, ok := entrySource(entry); ok {
		prefix.WriteString(lipgloss.NewStyle().Foreground(components.SourceColor(source)).Bold(true).Render("[" + source + "]"))
		prefix.WriteString(" ")
	}

	text := h.highlight(entry.Message)
	if fields := logs.FormatFields(entry.Fields); fields != "" {
		text += " " + components.MutedStyle.Render(h.highlight(fields))
	}

	line := prefix.String() + text
	if ansi.StringWidth(line) <= width {
		return line
	}

	return wrapLines(line, width)
}

// healthDot returns a status-colored dot for entries that name a project and service
func (m *Model) healthDot(entry logs.Entry) (string, bool) {
	if m.poller == nil {
		return "", false
	}

	project, okProject := entry.Field("project")
	service, okService := entry.Field("service")

	if !okProject || !okService {
		return "", false
	}

	status := m.poller.StatusOf(project, service)

	return components.HealthStyle(string(status)).Render(healthDot), true
}

// wrapLines wraps an ANSI-styled line and marks every continuation row
func wrapLines(line string, width int) string {
	inner := width - ansi.StringWidth(wrapMiddle)
	if inner < 1 {
		return line
	}

	first := ansi.Wrap(line, width, " ")
	rows := strings.Split(first, "\n")

	if len(rows) == 1 {
		return first
	}

	rest := ansi.Wrap(strings.Join(rows[1:], " "), inner, " ")
	tail := strings.Split(rest, "\n")

	out := make([]string, 0, len(tail)+1)
	out = append(out, rows[0])

	for i, row := range tail {
		marker := wrapMiddle
		if i == len(tail)-1 {
			marker = wrapLast
		}

		out = append(out, components.MutedStyle.Render(marker)+row)
	}

	return strings.Join(out, "\n")
}

// entrySource picks the source tag shown before the message
func entrySource(entry logs.Entry) (string, bool) {
	for _, key := range []string{"component", "service", "project"} {
		if v, ok := entry.Field(key); ok && v != "" {
			return v, true
		}
	}

	return "", false
}

func (m Model) renderHeader() string {
	title := components.TitleStyle.Render("hatchlog")

	levels := make([]string, 0, len(logs.Levels))
	for i, level := range logs.Levels {
		label := fmt.Sprintf("%d:%s", i+1, strings.ToUpper(string(level)))
		if m.state.filter.IsEnabled(level) {
			levels = append(levels, components.LevelStyle(string(level)).Render(label))
		} else {
			levels = append(levels, components.InactiveLevelStyle.Render(label))
		}
	}

	counts := components.MutedStyle.Render(fmt.Sprintf("%d/%d", m.state.visible, m.state.total))

	search := ""
	if m.ui.searching || m.state.filter.Query() != "" {
		search = m.ui.search.View()
	}

	scroll := ""
	if !m.ui.autoscroll {
		scroll = components.MutedStyle.Render("paused")
	}

	parts := []string{title, m.ui.indicator.Render(), strings.Join(levels, " "), counts}
	for _, part := range []string{scroll, search} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	line := strings.Join(parts, "  ")

	return lipgloss.NewStyle().MaxWidth(m.ui.width).Render(line) + "\n"
}

func (m Model) renderBody() string {
	if m.state.total == 0 {
		return m.fill(components.EmptyStateStyle.Render("Waiting for log entries…"))
	}

	if m.state.visible == 0 {
		return m.fill(components.EmptyStateStyle.Render("No entries match the current filter."))
	}

	return m.ui.viewport.View()
}

// fill pads a placeholder to the viewport height so the footer stays in place
func (m Model) fill(text string) string {
	return lipgloss.NewStyle().Height(m.ui.viewport.Height).Render(text)
}

func (m Model) renderFooter() string {
	status := m.healthSummary()
	if m.state.notice != "" {
		status = components.MutedStyle.Render(m.state.notice) + "  " + status
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().MaxWidth(m.ui.width).Render(status),
		components.HelpStyle.Render(m.ui.help.View(m.ui.keys)),
	)
}

// healthSummary counts services per status
func (m Model) healthSummary() string {
	if m.poller == nil {
		return ""
	}

	snapshots := m.poller.Snapshots()
	if len(snapshots) == 0 {
		return components.MutedStyle.Render("no health data")
	}

	counts := make(map[health.Status]int, 3)
	for _, s := range snapshots {
		counts[s.Status]++
	}

	parts := make([]string, 0, 3)
	for _, status := range []health.Status{health.StatusHealthy, health.StatusUnhealthy, health.StatusUnknown} {
		if counts[status] == 0 {
			continue
		}

		parts = append(parts, components.HealthStyle(string(status)).Render(fmt.Sprintf("%s %d %s", healthDot, counts[status], status)))
	}

	return strings.Join(parts, "  ")
}
