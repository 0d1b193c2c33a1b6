package viewer

import (
	"github.com/charmbracelet/bubbles/key"

	"hatchlog/internal/app/ui/components"
)

// KeyMap defines the key bindings for the log viewer
type KeyMap struct {
	components.KeyMap
	Refresh key.Binding
	Help    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		KeyMap: components.DefaultKeyMap(),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh health"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.ToggleDebug, k.ToggleInfo, k.ToggleWarn, k.ToggleError, k.Clear, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Bottom},
		{k.ToggleDebug, k.ToggleInfo, k.ToggleWarn, k.ToggleError},
		{k.Search, k.ClearSearch, k.Clear, k.Autoscroll, k.Refresh},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
