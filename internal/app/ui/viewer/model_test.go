package viewer

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hatchlog/internal/app/bus"
	"hatchlog/internal/app/health"
	"hatchlog/internal/app/logs"
	"hatchlog/internal/app/stream"
	"hatchlog/internal/app/ui/components"
	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type fixture struct {
	tailer  *stream.MockTailer
	poller  *health.MockPoller
	changes chan logs.Change
	model   Model
}

func newFixture(t *testing.T, cfg *config.Config, entries []logs.Entry) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		tailer:  stream.NewMockTailer(ctrl),
		poller:  health.NewMockPoller(ctrl),
		changes: make(chan logs.Change, 1),
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	f.tailer.EXPECT().Subscribe(gomock.Any()).Return((<-chan logs.Change)(f.changes))
	f.tailer.EXPECT().State().Return(stream.SessionDisconnected)
	f.tailer.EXPECT().Entries().DoAndReturn(func() []logs.Entry { return entries }).AnyTimes()
	f.poller.EXPECT().StatusOf(gomock.Any(), gomock.Any()).Return(health.StatusUnknown).AnyTimes()
	f.poller.EXPECT().Snapshots().Return([]health.Snapshot{}).AnyTimes()

	log := logger.NewLoggerWithOutput(cfg, io.Discard)
	f.model = NewModel(ctx, cfg, f.tailer, f.poller, bus.New(cfg, nil), log)

	return f
}

func (f *fixture) update(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()

	next, cmd := f.model.Update(msg)
	m, ok := next.(Model)
	require.True(t, ok)
	f.model = m

	return cmd
}

func sample() []logs.Entry {
	return []logs.Entry{
		{ID: 1, Level: logs.LevelDebug, Message: "cache warm"},
		{ID: 2, Level: logs.LevelInfo, Message: "request served", Fields: map[string]any{"service": "api"}},
		{ID: 3, Level: logs.LevelWarn, Message: "slow upstream"},
		{ID: 4, Level: logs.LevelError, Message: "upstream refused"},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func Test_NewModel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Filter.Levels = []string{"warn", "error"}
	cfg.Filter.Search = "up"

	f := newFixture(t, cfg, nil)

	assert.Equal(t, []logs.Level{logs.LevelWarn, logs.LevelError}, f.model.Filter().Enabled())
	assert.Equal(t, "up", f.model.Filter().Query())
	assert.Equal(t, "up", f.model.ui.search.Value())
	assert.True(t, f.model.ui.autoscroll)
	assert.Equal(t, components.LinkDisconnected, f.model.ui.indicator.Link())
	assert.NotNil(t, f.model.Init())
}

func Test_View_BeforeResize(t *testing.T) {
	f := newFixture(t, config.DefaultConfig(), nil)

	assert.Equal(t, "Initializing…", f.model.View())
}

func Test_WindowSize(t *testing.T) {
	f := newFixture(t, config.DefaultConfig(), sample())

	f.update(t, tea.WindowSizeMsg{Width: 120, Height: 30})

	assert.True(t, f.model.ui.ready)
	assert.Equal(t, 120, f.model.ui.viewport.Width)
	assert.Equal(t, 30-components.HeaderHeight-components.FooterHeight, f.model.ui.viewport.Height)
	assert.Equal(t, 4, f.model.state.total)
	assert.Equal(t, 4, f.model.state.visible)

	view := f.model.View()
	assert.Contains(t, view, "slow upstream")
	assert.Contains(t, view, "4/4")
	assert.Contains(t, view, "offline")
}

func Test_ToggleLevels(t *testing.T) {
	tests := []struct {
		name    string
		keys    []string
		visible int
		hidden  []string
	}{
		{name: "hide debug", keys: []string{"1"}, visible: 3, hidden: []string{"cache warm"}},
		{name: "hide debug and info", keys: []string{"1", "2"}, visible: 2, hidden: []string{"cache warm", "request served"}},
		{name: "toggle back", keys: []string{"3", "3"}, visible: 4},
		{name: "hide everything", keys: []string{"1", "2", "3", "4"}, visible: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, config.DefaultConfig(), sample())
			f.update(t, tea.WindowSizeMsg{Width: 120, Height: 30})

			for _, k := range tt.keys {
				f.update(t, runes(k))
			}

			assert.Equal(t, tt.visible, f.model.state.visible)
			assert.Equal(t, 4, f.model.state.total)

			view := f.model.View()
			for _, text := range tt.hidden {
				assert.NotContains(t, view, text)
			}

			if tt.visible == 0 {
				assert.Contains(t, view, "No entries match the current filter.")
			}
		})
	}
}

func Test_Search(t *testing.T) {
	f := newFixture(t, config.DefaultConfig(), sample())
	f.update(t, tea.WindowSizeMsg{Width: 120, Height: 30})

	f.update(t, runes("/"))
	assert.True(t, f.model.ui.searching)

	f.update(t, runes("UPSTREAM"))
	assert.Equal(t, "UPSTREAM", f.model.Filter().Query())
	assert.Equal(t, 2, f.model.state.visible)

	f.update(t, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, f.model.ui.searching)
	assert.Equal(t, "UPSTREAM", f.model.Filter().Query())

	f.update(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "", f.model.Filter().Query())
	assert.Equal(t, 4, f.model.state.visible)
}

func Test_Search_EscapeWhileTyping(t *testing.T) {
	f := newFixture(t, config.DefaultConfig(), sample())
	f.update(t, tea.WindowSizeMsg{Width: 120, Height: 30})

	f.update(t, runes("/"))
	f.update(t, runes("cache"))
	assert.Equal(t, 1, f.model.state.visible)

	f.update(t, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, f.model.ui.searching)
	assert.Equal(t, "", f.model.ui.search.Value())
	assert.Equal(t, 4, f.model.state.visible)
}

func Test_Search_QuitKeyIsText(t *testing.T) {
	f := newFixture(t, config.DefaultConfig(), sample())
	f.update(t, tea.WindowSizeMsg{Width: 120, Height: 30})

	f.update(t, runes("/"))
	f.update(t, runes("q"))

	assert.True(t, f.model.ui.searching)
	assert.Equal(t, "q", f.model.Filter().Query())
}

func Test_Clear(t *testing.T) {
	entries := sample()
	f := newFixture(t, config.DefaultConfig(), nil)
	f.tailer.EXPECT().Clear().Do(func() { entries = nil })

	f.model.tailer = &clearingTailer{MockTailer: f.tailer, entries: &entries}
	f.update(t, tea.WindowSizeMsg{Width: 120, Height: 30})
	assert.Equal(t, 4, f.model.state.total)

	f.update(t, runes("c"))

	assert.Equal(t, 0, f.model.state.total)
	assert.Contains(t, f.model.View(), "Waiting for log entries…")
}

// clearingTailer serves entries from a slice the test mutates
type clearingTailer struct {
	*stream.MockTailer
	entries *[]logs.Entry
}

func (c *clearingTailer) Entries() []logs.Entry {
	return *c.entries
}

func Test_Autoscroll(t *testing.T) {
	f := newFixture(t, config.DefaultConfig(), sample())
	f.update(t, tea.WindowSizeMsg{Width: 120, Height: 30})

	f.update(t, runes("a"))
	assert.False(t, f.model.ui.autoscroll)
	assert.Contains(t, f.model.View(), "paused")

	f.update(t, runes("G"))
	assert.True(t, f.model.ui.autoscroll)
}

func Test_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: runes("q")},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, config.DefaultConfig(), nil)

			cmd := f.update(t, tt.msg)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func Test_ChangeMarksDirty(t *testing.T) {
	entries := sample()[:1]
	f := newFixture(t, config.DefaultConfig(), nil)
	f.model.tailer = &clearingTailer{MockTailer: f.tailer, entries: &entries}
	f.update(t, tea.WindowSizeMsg{Width: 120, Height: 30})
	assert.Equal(t, 1, f.model.state.total)

	entries = sample()
	cmd := f.update(t, changeMsg(logs.Change{Kind: logs.ChangeAppended, Len: 4}))

	assert.NotNil(t, cmd)
	assert.True(t, f.model.state.dirty)
	assert.Equal(t, 1, f.model.state.total)

	f.update(t, tickMsg(time.Now()))

	assert.False(t, f.model.state.dirty)
	assert.Equal(t, 4, f.model.state.total)
}

func Test_ChannelClosed(t *testing.T) {
	f := newFixture(t, config.DefaultConfig(), nil)

	cmd := f.update(t, channelClosedMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func Test_HandleMessage(t *testing.T) {
	tests := []struct {
		name   string
		msgs   []bus.Message
		link   components.Link
		notice string
		dirty  bool
	}{
		{
			name: "session connecting",
			msgs: []bus.Message{{Type: bus.EventSessionState, Data: bus.SessionState{Session: 1, From: "idle", To: "connecting"}}},
			link: components.LinkConnecting,
		},
		{
			name: "connected clears notice",
			msgs: []bus.Message{
				{Type: bus.EventReconnectScheduled, Data: bus.ReconnectScheduled{Attempt: 1, Delay: 3 * time.Second}},
				{Type: bus.EventConnectionChanged, Data: bus.ConnectionChanged{Connected: true}},
			},
			link: components.LinkConnected,
		},
		{
			name: "disconnected",
			msgs: []bus.Message{
				{Type: bus.EventConnectionChanged, Data: bus.ConnectionChanged{Connected: true}},
				{Type: bus.EventConnectionChanged, Data: bus.ConnectionChanged{Connected: false}},
			},
			link: components.LinkDisconnected,
		},
		{
			name:   "reconnect scheduled",
			msgs:   []bus.Message{{Type: bus.EventReconnectScheduled, Data: bus.ReconnectScheduled{Attempt: 2, Delay: 3 * time.Second}}},
			link:   components.LinkDisconnected,
			notice: "reconnecting in 3s",
		},
		{
			name:  "health updated",
			msgs:  []bus.Message{{Type: bus.EventHealthUpdated, Data: bus.HealthUpdated{Count: 2}}},
			link:  components.LinkDisconnected,
			dirty: true,
		},
		{
			name:   "config reloaded",
			msgs:   []bus.Message{{Type: bus.EventConfigReloaded, Data: bus.ConfigReloaded{Path: "hatchlog.yaml"}}},
			link:   components.LinkDisconnected,
			notice: "configuration reloaded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, config.DefaultConfig(), nil)
			f.model.state.dirty = false

			for _, msg := range tt.msgs {
				cmd := f.update(t, busMsg(msg))
				assert.NotNil(t, cmd)
			}

			assert.Equal(t, tt.link, f.model.ui.indicator.Link())
			assert.Equal(t, tt.notice, f.model.state.notice)
			assert.Equal(t, tt.dirty, f.model.state.dirty)
		})
	}
}

func Test_Refresh(t *testing.T) {
	f := newFixture(t, config.DefaultConfig(), nil)
	f.poller.EXPECT().Refresh(gomock.Any()).Return(nil)

	cmd := f.update(t, runes("r"))
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
}

func Test_LinkFor(t *testing.T) {
	assert.Equal(t, components.LinkConnected, linkFor(stream.SessionConnected))
	assert.Equal(t, components.LinkConnecting, linkFor(stream.SessionConnecting))
	assert.Equal(t, components.LinkDisconnected, linkFor(stream.SessionDisconnected))
}

func Test_KeyMap_Help(t *testing.T) {
	keys := DefaultKeyMap()

	assert.NotEmpty(t, keys.ShortHelp())
	assert.Len(t, keys.FullHelp(), 4)
}
