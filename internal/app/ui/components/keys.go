package components

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the log viewer key bindings
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Bottom      key.Binding
	ToggleDebug key.Binding
	ToggleInfo  key.Binding
	ToggleWarn  key.Binding
	ToggleError key.Binding
	Search      key.Binding
	ClearSearch key.Binding
	Clear       key.Binding
	Autoscroll  key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "page down")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "jump to latest")),
		ToggleDebug: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "debug")),
		ToggleInfo:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "info")),
		ToggleWarn:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "warn")),
		ToggleError: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "error")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ClearSearch: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Clear:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Autoscroll:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autoscroll")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),
	}
}
