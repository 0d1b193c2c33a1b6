package logs

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"hatchlog/internal/app/ui/components"
	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

// Fields used to pick a colored source tag for a line
var sourceKeys = []string{"component", "service", "project"}

// Formatter renders entries as text lines for non-interactive output
type Formatter struct {
	mu           sync.Mutex
	format       string
	width        int
	mutedStyle   lipgloss.Style
	sourceStyles map[string]lipgloss.Style
}

// NewFormatter creates a formatter following the configured logging format
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{
		format:       cfg.Logging.Format,
		mutedStyle:   lipgloss.NewStyle().Foreground(components.FgMuted),
		sourceStyles: make(map[string]lipgloss.Style),
	}
}

// SetWidth limits console lines to the given width; zero disables truncation
func (f *Formatter) SetWidth(width int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.width = width
}

// Format renders one entry without a trailing newline
func (f *Formatter) Format(entry Entry) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.format == logger.JSONFormat {
		return f.formatJSON(entry)
	}

	return f.formatConsole(entry)
}

// WriteFormatted writes a formatted entry followed by a newline
func (f *Formatter) WriteFormatted(w io.Writer, entry Entry) {
	fmt.Fprintln(w, f.Format(entry))
}

// FormatTime renders a timestamp as local HH:MM:SS.mmm, or returns it unchanged when unparsable
func FormatTime(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}

	return t.Local().Format("15:04:05.000")
}

// FormatFields renders fields as sorted key=value pairs
func FormatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + Stringify(fields[k])
	}

	return strings.Join(pairs, " ")
}

// TerminalWidth returns the width of the terminal behind fd, or zero when fd is not a terminal
func TerminalWidth(fd uintptr) int {
	if !term.IsTerminal(fd) {
		return 0
	}

	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}

	return width
}

// formatConsole renders "time LEVEL [source] message k=v"
func (f *Formatter) formatConsole(entry Entry) string {
	var b strings.Builder

	if entry.Timestamp != "" {
		b.WriteString(f.mutedStyle.Render(FormatTime(entry.Timestamp)))
		b.WriteString(" ")
	}

	b.WriteString(components.LevelStyle(string(entry.Level)).Render(fmt.Sprintf("%-5s", strings.ToUpper(string(entry.Level)))))
	b.WriteString(" ")

	if source, ok := entrySource(entry); ok {
		b.WriteString(f.sourceStyle(source).Render("[" + source + "]"))
		b.WriteString(" ")
	}

	b.WriteString(entry.Message)

	if fields := FormatFields(entry.Fields); fields != "" {
		b.WriteString(" ")
		b.WriteString(f.mutedStyle.Render(fields))
	}

	line := b.String()
	if f.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(f.width).Render(line)
	}

	return line
}

// formatJSON re-emits the entry in its wire shape
func (f *Formatter) formatJSON(entry Entry) string {
	out := make(map[string]any, len(entry.Fields)+3)
	for k, v := range entry.Fields {
		out[k] = v
	}

	out[KeyTime] = entry.Timestamp
	out[KeyLevel] = entry.Level
	out[KeyMessage] = entry.Message

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"level":%q,"message":%q}`, entry.Level, entry.Message)
	}

	return string(data)
}

// sourceStyle returns a stable color for a source name
func (f *Formatter) sourceStyle(source string) lipgloss.Style {
	if style, exists := f.sourceStyles[source]; exists {
		return style
	}

	style := lipgloss.NewStyle().Foreground(components.SourceColor(source)).Bold(true)
	f.sourceStyles[source] = style

	return style
}

// entrySource picks the first populated source field
func entrySource(entry Entry) (string, bool) {
	for _, key := range sourceKeys {
		if v, ok := entry.Field(key); ok && v != "" {
			return v, true
		}
	}

	return "", false
}
