package wire

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hatchlog/internal/app/bus"
	"hatchlog/internal/app/health"
	"hatchlog/internal/app/logs"
	"hatchlog/internal/app/stream"
	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

func Test_NewUI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	params := UIParams{
		Config: config.DefaultConfig(),
		Bus:    bus.NoOp(),
		Tailer: stream.NewMockTailer(ctrl),
		Poller: health.NewMockPoller(ctrl),
		Logger: logger.NewMockLogger(ctrl),
	}

	factory := NewUI(params)
	assert.NotNil(t, factory)
}

func Test_UI_CreateProgram(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTailer := stream.NewMockTailer(ctrl)
	mockPoller := health.NewMockPoller(ctrl)
	mockLogger := logger.NewMockLogger(ctrl)

	ctx := context.Background()
	changes := make(chan logs.Change)
	close(changes)

	mockTailer.EXPECT().Subscribe(ctx).Return((<-chan logs.Change)(changes))
	mockTailer.EXPECT().State().Return(stream.SessionDisconnected)
	mockLogger.EXPECT().WithComponent("UI").Return(mockLogger)
	mockLogger.EXPECT().Debug().Return(nil).AnyTimes()

	params := UIParams{
		Config: config.DefaultConfig(),
		Bus:    bus.NoOp(),
		Tailer: mockTailer,
		Poller: mockPoller,
		Logger: mockLogger,
	}

	factory := NewUI(params)
	program, err := factory(ctx)

	assert.NoError(t, err)
	assert.NotNil(t, program)
}
