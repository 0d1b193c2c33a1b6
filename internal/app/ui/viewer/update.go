package viewer

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"hatchlog/internal/app/bus"
	"hatchlog/internal/app/logs"
	"hatchlog/internal/app/stream"
	"hatchlog/internal/app/ui/components"
)

// changeMsg wraps a buffer change for tea messaging
type changeMsg logs.Change

// busMsg wraps a bus message for tea messaging
type busMsg bus.Message

// tickMsg signals a UI tick for animations and coalesced redraws
type tickMsg time.Time

// channelClosedMsg signals a subscription channel has closed
type channelClosedMsg struct{}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.ui.width = msg.Width
		m.ui.height = msg.Height
		m.ui.help.Width = msg.Width

		height := msg.Height - components.HeaderHeight - components.FooterHeight
		if height < 1 {
			height = 1
		}

		m.ui.viewport.Width = msg.Width
		m.ui.viewport.Height = height
		m.ui.ready = true
		m.refresh()

		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd

		m.ui.viewport, cmd = m.ui.viewport.Update(msg)
		m.ui.autoscroll = m.ui.viewport.AtBottom()

		return m, cmd

	case tickMsg:
		m.ui.indicator.Update()

		if m.state.dirty {
			m.refresh()
		}

		return m, tickCmd()

	case changeMsg:
		m.state.dirty = true

		return m, waitForChangeCmd(m.changes)

	case busMsg:
		return m.handleMessage(bus.Message(msg))

	case channelClosedMsg:
		m.log.Debug().Msg("Subscription closed, quitting")

		return m, tea.Quit
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.ui.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.ui.searching {
		return m.handleSearchKey(msg)
	}

	keys := m.ui.keys

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.ToggleDebug):
		m.toggle(logs.LevelDebug)

	case key.Matches(msg, keys.ToggleInfo):
		m.toggle(logs.LevelInfo)

	case key.Matches(msg, keys.ToggleWarn):
		m.toggle(logs.LevelWarn)

	case key.Matches(msg, keys.ToggleError):
		m.toggle(logs.LevelError)

	case key.Matches(msg, keys.Search):
		m.ui.searching = true

		return m, m.ui.search.Focus()

	case key.Matches(msg, keys.ClearSearch):
		m.setQuery("")

	case key.Matches(msg, keys.Clear):
		m.tailer.Clear()
		m.state.notice = ""
		m.refresh()

	case key.Matches(msg, keys.Autoscroll):
		m.ui.autoscroll = !m.ui.autoscroll
		if m.ui.autoscroll {
			m.ui.viewport.GotoBottom()
		}

	case key.Matches(msg, keys.Bottom):
		m.ui.autoscroll = true
		m.ui.viewport.GotoBottom()

	case key.Matches(msg, keys.Refresh):
		return m, refreshCmd(m)

	case key.Matches(msg, keys.Help):
		m.ui.help.ShowAll = !m.ui.help.ShowAll

	case key.Matches(msg, keys.Up, keys.Down, keys.PageUp, keys.PageDown):
		var cmd tea.Cmd

		m.ui.viewport, cmd = m.ui.viewport.Update(msg)
		m.ui.autoscroll = m.ui.viewport.AtBottom()

		return m, cmd
	}

	return m, nil
}

// handleSearchKey edits the query while the search input has focus
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.ui.searching = false
		m.ui.search.Blur()

		return m, nil

	case tea.KeyEsc:
		m.ui.searching = false
		m.ui.search.Blur()
		m.setQuery("")

		return m, nil
	}

	var cmd tea.Cmd

	m.ui.search, cmd = m.ui.search.Update(msg)
	if m.ui.search.Value() != m.state.filter.Query() {
		m.state.filter = m.state.filter.WithQuery(m.ui.search.Value())
		m.refresh()
	}

	return m, cmd
}

// handleMessage applies a bus event to the view
func (m Model) handleMessage(msg bus.Message) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case bus.EventSessionState:
		if data, ok := msg.Data.(bus.SessionState); ok {
			m.ui.indicator.SetLink(linkFor(stream.SessionStateOf(stream.State(data.To))))
		}

	case bus.EventConnectionChanged:
		if data, ok := msg.Data.(bus.ConnectionChanged); ok {
			if data.Connected {
				m.ui.indicator.SetLink(components.LinkConnected)
			} else if m.ui.indicator.Link() == components.LinkConnected {
				m.ui.indicator.SetLink(components.LinkDisconnected)
			}
		}

	case bus.EventReconnectScheduled:
		if data, ok := msg.Data.(bus.ReconnectScheduled); ok {
			m.state.notice = "reconnecting in " + data.Delay.String()
		}

	case bus.EventHealthUpdated:
		m.state.dirty = true

	case bus.EventConfigReloaded:
		m.state.notice = "configuration reloaded"
	}

	if msg.Type == bus.EventConnectionChanged || msg.Type == bus.EventSessionState {
		if m.ui.indicator.Link() == components.LinkConnected {
			m.state.notice = ""
		}
	}

	return m, waitForMsgCmd(m.msgChan)
}

func (m *Model) toggle(level logs.Level) {
	m.state.filter = m.state.filter.Toggle(level)
	m.refresh()
}

func (m *Model) setQuery(query string) {
	m.ui.search.SetValue(query)
	m.state.filter = m.state.filter.WithQuery(query)
	m.refresh()
}

func waitForChangeCmd(ch <-chan logs.Change) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return channelClosedMsg{}
		}

		return changeMsg(change)
	}
}

func waitForMsgCmd(ch <-chan bus.Message) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return channelClosedMsg{}
		}

		return busMsg(msg)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(components.UITickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd polls health out of band; the result arrives as a HealthUpdated event
func refreshCmd(m Model) tea.Cmd {
	ctx, poller, log := m.ctx, m.poller, m.log

	return func() tea.Msg {
		if err := poller.Refresh(ctx); err != nil {
			log.Debug().Err(err).Msg("Manual health refresh failed")
		}

		return nil
	}
}
