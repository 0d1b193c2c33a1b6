package transport

import (
	"net"
	"net/http"
	"time"

	"hatchlog/internal/config"
)

const (
	dialTimeout         = 5 * time.Second
	keepAlive           = 30 * time.Second
	idleConnTimeout     = 90 * time.Second
	maxIdleConnsPerHost = 2
)

// Doer executes a single HTTP request
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewStreamClient creates a client for long-lived streaming responses.
// It has no overall timeout; sessions end through their request context.
func NewStreamClient() *http.Client {
	return &http.Client{Transport: newTransport()}
}

// NewPollClient creates a client for short request/response polls bounded by the health timeout
func NewPollClient(cfg *config.Config) *http.Client {
	return &http.Client{
		Transport: newTransport(),
		Timeout:   cfg.Health.Timeout,
	}
}

// newTransport builds a loopback-friendly transport that ignores proxy settings
func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   dialTimeout,
		KeepAlive: keepAlive,
	}

	return &http.Transport{
		Proxy:               nil,
		DialContext:         dialer.DialContext,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		DisableCompression:  true,
	}
}
