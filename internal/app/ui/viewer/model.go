package viewer

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"hatchlog/internal/app/bus"
	"hatchlog/internal/app/health"
	"hatchlog/internal/app/logs"
	"hatchlog/internal/app/stream"
	"hatchlog/internal/app/ui/components"
	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

// Model is the Bubble Tea model of the live log viewer
type Model struct {
	ctx     context.Context
	tailer  stream.Tailer
	poller  health.Poller
	msgChan <-chan bus.Message
	changes <-chan logs.Change

	state struct {
		filter  logs.Filter
		visible int
		total   int
		dirty   bool
		notice  string
	}

	ui struct {
		width      int
		height     int
		ready      bool
		searching  bool
		autoscroll bool
		keys       KeyMap
		help       help.Model
		search     textinput.Model
		viewport   viewport.Model
		indicator  *components.Indicator
	}

	log logger.Logger
}

// NewModel creates a viewer subscribed to the tailer buffer and the bus
func NewModel(ctx context.Context, cfg *config.Config, tailer stream.Tailer, poller health.Poller, b bus.Bus, log logger.Logger) Model {
	log = log.WithComponent("UI")

	m := Model{
		ctx:     ctx,
		tailer:  tailer,
		poller:  poller,
		msgChan: b.Subscribe(ctx),
		changes: tailer.Subscribe(ctx),
		log:     log,
	}

	m.state.filter = logs.NewFilter(cfg.Filter.Levels, cfg.Filter.Search)
	m.state.dirty = true

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"
	search.CharLimit = components.SearchCharLimit
	search.Width = components.SearchInputWidth
	search.SetValue(cfg.Filter.Search)

	m.ui.autoscroll = true
	m.ui.keys = DefaultKeyMap()
	m.ui.help = help.New()
	m.ui.search = search
	m.ui.viewport = viewport.New(0, 0)
	m.ui.indicator = components.NewIndicator()
	m.ui.indicator.SetLink(linkFor(tailer.State()))

	log.Debug().Msg("Created viewer and subscribed to events")

	return m
}

// Init starts listening for buffer changes, bus messages and UI ticks
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForChangeCmd(m.changes),
		waitForMsgCmd(m.msgChan),
		tickCmd(),
	)
}

// Filter returns the active view filter
func (m Model) Filter() logs.Filter {
	return m.state.filter
}

// linkFor maps a connection state onto the indicator link
func linkFor(state stream.SessionState) components.Link {
	switch state {
	case stream.SessionConnected:
		return components.LinkConnected
	case stream.SessionConnecting:
		return components.LinkConnecting
	default:
		return components.LinkDisconnected
	}
}
