package components

import "github.com/charmbracelet/lipgloss"

// Color palette for the UI with semantic naming
const (
	FgPrimary = lipgloss.Color("#7D56F4") // Purple - primary/focus color
	FgMuted   = lipgloss.Color("7")       // Light gray - muted elements
	FgBorder  = lipgloss.Color("8")       // Gray - borders and help text

	BgSelection = lipgloss.Color("235")

	FgConnected    = lipgloss.Color("10") // Green
	FgConnecting   = lipgloss.Color("11") // Yellow
	FgDisconnected = lipgloss.Color("9")  // Red
)

// Level colors follow the control panel palette: teal info, bronze warn, coral error
var (
	LevelDebugColor = lipgloss.AdaptiveColor{Light: "#737373", Dark: "#a3a3a3"}
	LevelInfoColor  = lipgloss.AdaptiveColor{Light: "#0d9488", Dark: "#5eead4"}
	LevelWarnColor  = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fcd34d"}
	LevelErrorColor = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

// Health colors
var (
	HealthyColor   = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#4ade80"}
	UnhealthyColor = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#fca5a5"}
	UnknownColor   = lipgloss.AdaptiveColor{Light: "#737373", Dark: "#a3a3a3"}
)

// SourceColorPalette provides distinct colors for log sources
var SourceColorPalette = []lipgloss.AdaptiveColor{
	{Light: "#0891b2", Dark: "#22d3ee"}, // Cyan
	{Light: "#d97706", Dark: "#fbbf24"}, // Amber
	{Light: "#059669", Dark: "#34d399"}, // Emerald
	{Light: "#7c3aed", Dark: "#a78bfa"}, // Violet
	{Light: "#db2777", Dark: "#f472b6"}, // Pink
	{Light: "#2563eb", Dark: "#60a5fa"}, // Blue
	{Light: "#65a30d", Dark: "#a3e635"}, // Lime
	{Light: "#ea580c", Dark: "#fb923c"}, // Orange
	{Light: "#4f46e5", Dark: "#818cf8"}, // Indigo
	{Light: "#0284c7", Dark: "#38bdf8"}, // Sky
	{Light: "#6d28d9", Dark: "#c4b5fd"}, // Purple
	{Light: "#047857", Dark: "#6ee7b7"}, // Mint
}

// SourceColor returns a stable palette color for a source name
func SourceColor(name string) lipgloss.AdaptiveColor {
	return SourceColorPalette[hashString(name)%len(SourceColorPalette)]
}

// LevelColor returns the color for a severity name
func LevelColor(level string) lipgloss.AdaptiveColor {
	switch level {
	case "debug":
		return LevelDebugColor
	case "warn":
		return LevelWarnColor
	case "error":
		return LevelErrorColor
	default:
		return LevelInfoColor
	}
}

// HealthColor returns the color for a health status name
func HealthColor(status string) lipgloss.AdaptiveColor {
	switch status {
	case "healthy":
		return HealthyColor
	case "unhealthy":
		return UnhealthyColor
	default:
		return UnknownColor
	}
}

// hashString returns a simple non-negative hash of a string
func hashString(s string) int {
	h := 0
	for _, c := range s {
		h = 31*h + int(c)
	}

	if h < 0 {
		h = -h
	}

	return h
}
