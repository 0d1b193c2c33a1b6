package app

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/mock/gomock"

	"hatchlog/internal/app/cli"
	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

// mockLifecycle implements fx.Lifecycle for testing
type mockLifecycle struct {
	onAppend func(fx.Hook)
}

func (m *mockLifecycle) Append(hook fx.Hook) {
	if m.onAppend != nil {
		m.onAppend(hook)
	}
}

// mockShutdowner counts shutdown requests
type mockShutdowner struct {
	calls int
	err   error
}

func (m *mockShutdowner) Shutdown(...fx.ShutdownOption) error {
	m.calls++

	return m.err
}

func discardLogger() logger.Logger {
	return logger.NewLoggerWithOutput(config.DefaultConfig(), io.Discard)
}

func Test_NewApp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCLI := cli.NewMockCLI(ctrl)
	log := discardLogger()

	application := NewApp(mockCLI, &mockShutdowner{}, log)

	assert.NotNil(t, application)
	assert.Equal(t, mockCLI, application.cli)
	assert.Equal(t, log, application.log)
}

func Test_execute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name     string
		code     int
		err      error
		expected int
	}{
		{name: "Success", code: 0, expected: 0},
		{name: "Failure", code: 1, err: errors.New("fetch failed"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCLI := cli.NewMockCLI(ctrl)
			mockCLI.EXPECT().Execute().Return(tt.code, tt.err)

			app := NewApp(mockCLI, &mockShutdowner{}, discardLogger())

			assert.Equal(t, tt.expected, app.execute())
		})
	}
}

func Test_App_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name        string
		shutdownErr error
	}{
		{name: "Shuts down after command"},
		{name: "Shutdown error is logged", shutdownErr: errors.New("already stopping")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCLI := cli.NewMockCLI(ctrl)
			mockCLI.EXPECT().Execute().Return(0, nil)

			shutdowner := &mockShutdowner{err: tt.shutdownErr}
			app := NewApp(mockCLI, shutdowner, discardLogger())

			app.Run()

			assert.Equal(t, 1, shutdowner.calls)

			select {
			case <-app.done:
			default:
				t.Fatal("done channel not closed")
			}
		})
	}
}

func Test_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app := NewApp(cli.NewMockCLI(ctrl), &mockShutdowner{}, discardLogger())

	var registered bool

	var capturedHook fx.Hook

	testLifecycle := &mockLifecycle{
		onAppend: func(hook fx.Hook) {
			registered = true
			capturedHook = hook
		},
	}

	Register(testLifecycle, app)

	assert.True(t, registered)
	assert.NotNil(t, capturedHook.OnStart)
	assert.NotNil(t, capturedHook.OnStop)
}

func Test_Register_Hooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCLI := cli.NewMockCLI(ctrl)
	mockCLI.EXPECT().Execute().Return(0, nil)

	shutdowner := &mockShutdowner{}
	app := NewApp(mockCLI, shutdowner, discardLogger())

	var capturedHook fx.Hook

	Register(&mockLifecycle{onAppend: func(hook fx.Hook) { capturedHook = hook }}, app)

	assert.NoError(t, capturedHook.OnStart(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, capturedHook.OnStop(ctx))
	assert.Equal(t, 1, shutdowner.calls)
}

func Test_Register_OnStopTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app := NewApp(cli.NewMockCLI(ctrl), &mockShutdowner{}, discardLogger())

	var capturedHook fx.Hook

	Register(&mockLifecycle{onAppend: func(hook fx.Hook) { capturedHook = hook }}, app)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, capturedHook.OnStop(ctx), context.Canceled)
}
