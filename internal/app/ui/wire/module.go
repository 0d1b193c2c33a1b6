package wire

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/fx"

	"hatchlog/internal/app/bus"
	"hatchlog/internal/app/health"
	"hatchlog/internal/app/stream"
	"hatchlog/internal/app/ui/viewer"
	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

// UI creates a Bubble Tea program for the TUI
type UI func(ctx context.Context) (*tea.Program, error)

// Module provides the UI factory
var Module = fx.Options(
	fx.Provide(NewUI),
)

// UIParams contains dependencies for creating the UI factory
type UIParams struct {
	fx.In

	Config *config.Config
	Bus    bus.Bus
	Tailer stream.Tailer
	Poller health.Poller
	Logger logger.Logger
}

// NewUI creates a factory function for constructing Bubble Tea programs
func NewUI(params UIParams) UI {
	return func(ctx context.Context) (*tea.Program, error) {
		model := viewer.NewModel(
			ctx,
			params.Config,
			params.Tailer,
			params.Poller,
			params.Bus,
			params.Logger,
		)

		p := tea.NewProgram(
			model,
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
			tea.WithContext(ctx),
		)

		params.Logger.Debug().Msg("TUI: Program created via factory")

		return p, nil
	}
}
