package config

import "time"

// app constants
const (
	AppName        = "hatchlog"
	AppDescription = "Live log tail and health view for the hatch developer proxy"
	Version        = "0.3.0"

	FileName  = "hatchlog.yaml"
	EnvFile   = ".env"
	EnvPrefix = "HATCHLOG"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// api constants
const (
	DefaultBaseURL = "http://127.0.0.1:42824"
)

// stream constants
const (
	DefaultStreamPath     = "/api/logs"
	DefaultStreamBuffer   = 1000
	DefaultReconnectDelay = 3 * time.Second
)

// health constants
const (
	DefaultHealthPath     = "/api/health"
	DefaultHealthInterval = 10 * time.Second
	DefaultHealthTimeout  = 5 * time.Second
)

// level constants
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// bus and watcher constants
const (
	DefaultBusBuffer = 64
	WatchDebounce    = 300 * time.Millisecond
)

// Levels lists the severities the log stream recognizes, in display order
var Levels = []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
