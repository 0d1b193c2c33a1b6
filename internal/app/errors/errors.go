package errors

import (
	"errors"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrFailedToLoadEnv     = errors.New("failed to load env file")
	ErrInvalidConfig       = errors.New("invalid configuration")

	ErrInvalidBaseURL         = errors.New("api base url must be an absolute http(s) url")
	ErrInvalidStreamPath      = errors.New("stream path must start with '/'")
	ErrInvalidHealthPath      = errors.New("health path must start with '/'")
	ErrInvalidBufferSize      = errors.New("stream buffer must be greater than zero")
	ErrInvalidReconnectDelay  = errors.New("stream reconnect delay must be greater than zero")
	ErrInvalidMaxReconnect    = errors.New("stream max reconnect delay must not be negative")
	ErrInvalidIdleTimeout     = errors.New("stream idle timeout must not be negative")
	ErrInvalidHealthInterval  = errors.New("health interval must be greater than zero")
	ErrInvalidHealthTimeout   = errors.New("health timeout must be greater than zero")
	ErrInvalidFilterLevel     = errors.New("invalid filter level")
	ErrInvalidBusBuffer       = errors.New("bus buffer must be greater than zero")
	ErrInvalidHealthPattern   = errors.New("invalid health pattern")
	ErrFailedToCreateRequest  = errors.New("failed to create request")
	ErrFailedToDecodeResponse = errors.New("failed to decode response")
	ErrUnexpectedStatus       = errors.New("unexpected response status")
	ErrMissingResponseBody    = errors.New("response has no readable body")
	ErrIdleTimeout            = errors.New("stream idle timeout")

	ErrTailerAlreadyStarted = errors.New("tailer already started")
	ErrPollerAlreadyStarted = errors.New("poller already started")
	ErrInvalidTransition    = errors.New("invalid session transition")

	ErrUnknownCommand = errors.New("unknown command")
)

var (
	As  = errors.As
	Is  = errors.Is
	New = errors.New
)
