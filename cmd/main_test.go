package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxevent"

	"hatchlog/internal/app/cli"
	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

func Test_LoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		opts    *cli.Options
		error   bool
	}{
		{name: "no file uses defaults", opts: &cli.Options{Type: cli.CommandTail}},
		{name: "valid file", content: "stream:\n  buffer: 20\n", opts: &cli.Options{Type: cli.CommandTail}},
		{name: "broken file fails tail", content: "stream:\n  buffer: 0\n", opts: &cli.Options{Type: cli.CommandTail}, error: true},
		{name: "broken file allows init", content: "stream:\n  buffer: 0\n", opts: &cli.Options{Type: cli.CommandInit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)

			if tt.content != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(tt.content), 0600))
			}

			cfg, err := loadConfig(tt.opts)
			if tt.error {
				assert.Error(t, err)
				assert.Nil(t, cfg)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, cfg)
		})
	}
}

func Test_UsesTUI(t *testing.T) {
	tests := []struct {
		name     string
		opts     *cli.Options
		expected bool
	}{
		{name: "default tail", opts: &cli.Options{Type: cli.CommandTail}, expected: true},
		{name: "tail without UI", opts: &cli.Options{Type: cli.CommandTail, NoUI: true}, expected: false},
		{name: "health", opts: &cli.Options{Type: cli.CommandHealth}, expected: false},
		{name: "version", opts: &cli.Options{Type: cli.CommandVersion}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, usesTUI(tt.opts))
		})
	}
}

func Test_CreateApp(t *testing.T) {
	tests := []struct {
		name  string
		level string
		opts  *cli.Options
	}{
		{name: "TUI with info logging", level: logger.InfoLevel, opts: &cli.Options{Type: cli.CommandTail}},
		{name: "Plain tail with debug logging", level: logger.DebugLevel, opts: &cli.Options{Type: cli.CommandTail, NoUI: true}},
		{name: "Health with error logging", level: logger.ErrorLevel, opts: &cli.Options{Type: cli.CommandHealth}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())

			cfg := config.DefaultConfig()
			cfg.Logging.Level = tt.level

			app := createApp(cfg, tt.opts)
			assert.NotNil(t, app)
			assert.NoError(t, app.Err())
		})
	}
}

func Test_CreateFxLogger(t *testing.T) {
	tests := []struct {
		name           string
		level          string
		expectedType   interface{}
		expectedLogger interface{}
	}{
		{name: "Debug level returns console logger", level: logger.DebugLevel, expectedType: &fxevent.ConsoleLogger{}},
		{name: "Info level returns nop logger", level: logger.InfoLevel, expectedLogger: fxevent.NopLogger},
		{name: "Warn level returns nop logger", level: logger.WarnLevel, expectedLogger: fxevent.NopLogger},
		{name: "Error level returns nop logger", level: logger.ErrorLevel, expectedLogger: fxevent.NopLogger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Logging.Level = tt.level

			loggerFunc := createFxLogger(cfg)
			assert.NotNil(t, loggerFunc)

			result := loggerFunc()
			assert.NotNil(t, result)

			if tt.expectedType != nil {
				assert.IsType(t, tt.expectedType, result)
			}

			if tt.expectedLogger != nil {
				assert.Equal(t, tt.expectedLogger, result)
			}
		})
	}
}
