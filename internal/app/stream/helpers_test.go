package stream

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

// streamServer serves each request with handler, passing the 1-based request number
func streamServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, n int)) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var count atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(w, r, int(count.Add(1)))
	}))
	t.Cleanup(srv.Close)

	return srv, &count
}

func writeEvents(w http.ResponseWriter, messages ...string) {
	w.Header().Set("Content-Type", "text/event-stream")

	for _, msg := range messages {
		fmt.Fprintf(w, "data: {\"level\":\"info\",\"message\":%q}\n\n", msg)
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func hold(r *http.Request) {
	<-r.Context().Done()
}

func discardLogger() logger.Logger {
	return logger.NewLoggerWithOutput(config.DefaultConfig(), io.Discard)
}
