package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"hatchlog/internal/config"
)

func Test_NewLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		format   string
		expected zerolog.Level
	}{
		{name: "Default", level: config.DefaultLogLevel, format: config.DefaultLogFormat, expected: zerolog.InfoLevel},
		{name: "Trace level", level: TraceLevel, format: ConsoleFormat, expected: zerolog.TraceLevel},
		{name: "Debug level", level: DebugLevel, format: ConsoleFormat, expected: zerolog.DebugLevel},
		{name: "Warn level and json format", level: WarnLevel, format: JSONFormat, expected: zerolog.WarnLevel},
		{name: "Error level", level: ErrorLevel, format: ConsoleFormat, expected: zerolog.ErrorLevel},
		{name: "Fatal level", level: FatalLevel, format: ConsoleFormat, expected: zerolog.FatalLevel},
		{name: "Panic level", level: PanicLevel, format: ConsoleFormat, expected: zerolog.PanicLevel},
		{name: "Empty level and format (defaults)", level: "", format: "", expected: zerolog.InfoLevel},
		{name: "Unknown level", level: "verbose", format: "unknown", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Logging.Level = tt.level
			cfg.Logging.Format = tt.format

			logger := NewLogger(cfg)
			assert.NotNil(t, logger)

			appLogger, ok := logger.(*AppLogger)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, appLogger.log.GetLevel())
			assert.NotEmpty(t, cfg.Logging.Level)
			assert.NotEmpty(t, cfg.Logging.Format)
		})
	}
}

func Test_NewLoggerWithOutput_JSON(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.Level = DebugLevel

	var buf bytes.Buffer

	logger := NewLoggerWithOutput(cfg, &buf)
	logger.WithComponent("STREAM").Debug().Str("url", "http://127.0.0.1:42824/api/logs").Msg("connecting")

	var line map[string]any

	assert.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "STREAM", line["component"])
	assert.Equal(t, config.AppName, line["app"])
	assert.Equal(t, config.Version, line["version"])
	assert.Equal(t, "connecting", line["message"])
}

func Test_NewLoggerWithOutput_FiltersBelowLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.Level = WarnLevel

	var buf bytes.Buffer

	logger := NewLoggerWithOutput(cfg, &buf)
	logger.Debug().Msg("hidden")
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func Test_ConsoleWriter(t *testing.T) {
	var buf bytes.Buffer

	log := zerolog.New(newConsoleWriter(&buf)).With().Str("app", config.AppName).Logger()
	log.Info().Str(componentField, "HEALTH").Str("status", "ok").Msg("poll complete")

	out := buf.String()
	assert.Contains(t, out, "[HEALTH]")
	assert.Contains(t, out, "poll complete")
	assert.Contains(t, out, "status=")
	assert.NotContains(t, out, "app=")
	assert.NotContains(t, out, "component=")
}

func Test_AppLogger_AllMethods(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.Level = TraceLevel

	var buf bytes.Buffer

	logger := NewLoggerWithOutput(cfg, &buf)

	logger.Trace().Msg("trace")
	logger.Debug().Msg("debug")
	logger.Info().Msg("info")
	logger.Warn().Msg("warn")
	logger.Error().Err(errors.New("boom")).Msg("error")

	for _, msg := range []string{"trace", "debug", "info", "warn", "error", "boom"} {
		assert.Contains(t, buf.String(), msg)
	}
}

func Test_getLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{TraceLevel, zerolog.TraceLevel},
		{DebugLevel, zerolog.DebugLevel},
		{InfoLevel, zerolog.InfoLevel},
		{WarnLevel, zerolog.WarnLevel},
		{ErrorLevel, zerolog.ErrorLevel},
		{FatalLevel, zerolog.FatalLevel},
		{PanicLevel, zerolog.PanicLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, getLogLevel(tt.level))
		})
	}
}

func Test_Module(t *testing.T) {
	assert.NotNil(t, Module)
}
