package stream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/looplab/fsm"

	"hatchlog/internal/app/errors"
	"hatchlog/internal/app/logs"
	"hatchlog/internal/app/transport"
	"hatchlog/internal/config/logger"
)

// State is the lifecycle position of one stream session
type State string

// Session states
const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateStreaming  State = "streaming"
	StateClosed     State = "closed"
)

// SessionState is the connection state seen by consumers of the tail
type SessionState string

// Connection states
const (
	SessionConnecting   SessionState = "connecting"
	SessionConnected    SessionState = "connected"
	SessionDisconnected SessionState = "disconnected"
)

// SessionStateOf collapses a session lifecycle state into a connection state
func SessionStateOf(state State) SessionState {
	switch state {
	case StateConnecting:
		return SessionConnecting
	case StateStreaming:
		return SessionConnected
	default:
		return SessionDisconnected
	}
}

// Session events
const (
	eventConnect   = "connect"
	eventEstablish = "establish"
	eventClose     = "close"
)

const readChunkSize = 32 * 1024

// Sink receives decoded entries; returning false stops the session
type Sink func(entry logs.Entry) bool

// Transition is called after every session state change
type Transition func(session uint64, from, to State)

// Session owns one attempt to hold the stream open. It is single-use.
type Session struct {
	id           uint64
	url          string
	doer         transport.Doer
	framer       *logs.Framer
	decoder      *logs.Decoder
	sink         Sink
	onTransition Transition
	idleTimeout  time.Duration
	fsm          *fsm.FSM
	streamed     atomic.Bool
	log          logger.Logger
}

// SessionOptions configures a session
type SessionOptions struct {
	ID           uint64
	URL          string
	Doer         transport.Doer
	Decoder      *logs.Decoder
	Sink         Sink
	OnTransition Transition
	IdleTimeout  time.Duration
	Log          logger.Logger
}

// NewSession creates an idle session with a fresh framer
func NewSession(opts SessionOptions) *Session {
	s := &Session{
		id:           opts.ID,
		url:          opts.URL,
		doer:         opts.Doer,
		framer:       logs.NewFramer(),
		decoder:      opts.Decoder,
		sink:         opts.Sink,
		onTransition: opts.OnTransition,
		idleTimeout:  opts.IdleTimeout,
		log:          opts.Log,
	}

	s.fsm = fsm.NewFSM(
		string(StateIdle),
		fsm.Events{
			{Name: eventConnect, Src: []string{string(StateIdle)}, Dst: string(StateConnecting)},
			{Name: eventEstablish, Src: []string{string(StateConnecting)}, Dst: string(StateStreaming)},
			{Name: eventClose, Src: []string{string(StateConnecting), string(StateStreaming)}, Dst: string(StateClosed)},
		},
		fsm.Callbacks{
			"after_event": func(_ context.Context, e *fsm.Event) {
				s.log.Debug().Msgf("SESSION %d: %s → %s (trigger: %s)", s.id, e.Src, e.Dst, e.Event)

				if s.onTransition != nil {
					s.onTransition(s.id, State(e.Src), State(e.Dst))
				}
			},
			"enter_" + string(StateStreaming): func(_ context.Context, _ *fsm.Event) {
				s.streamed.Store(true)
			},
		},
	)

	return s
}

// ID returns the session number
func (s *Session) ID() uint64 {
	return s.id
}

// State returns the current session state
func (s *Session) State() State {
	return State(s.fsm.Current())
}

// Streamed reports whether the session ever reached the streaming state
func (s *Session) Streamed() bool {
	return s.streamed.Load()
}

// Run connects and pumps the body until it ends, fails or ctx is cancelled.
// A clean end of stream returns nil. The session is closed when Run returns.
func (s *Session) Run(ctx context.Context) error {
	if err := s.fsm.Event(context.WithoutCancel(ctx), eventConnect); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidTransition, err)
	}

	sessionCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var idle *time.Timer
	if s.idleTimeout > 0 {
		idle = time.AfterFunc(s.idleTimeout, func() { cancel(errors.ErrIdleTimeout) })
		defer idle.Stop()
	}

	body, err := s.open(sessionCtx)
	if err != nil {
		s.close(ctx)
		return s.cause(sessionCtx, err)
	}
	defer body.Close()

	if err := s.fsm.Event(context.WithoutCancel(ctx), eventEstablish); err != nil {
		s.close(ctx)
		return fmt.Errorf("%w: %w", errors.ErrInvalidTransition, err)
	}

	err = s.pump(sessionCtx, body, idle)

	if pending := s.framer.Pending(); pending > 0 {
		s.log.Debug().Msgf("Session %d discarded %d byte partial record", s.id, pending)
	}

	s.framer.Reset()
	s.close(ctx)

	return s.cause(sessionCtx, err)
}

// open issues the stream request and validates the response
func (s *Session) open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToCreateRequest, err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.doer.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if resp.Body != nil {
			resp.Body.Close()
		}

		return nil, fmt.Errorf("%w: %s", errors.ErrUnexpectedStatus, resp.Status)
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		return nil, errors.ErrMissingResponseBody
	}

	return resp.Body, nil
}

// pump reads chunks until the body ends; io.EOF is reported as nil
func (s *Session) pump(ctx context.Context, body io.Reader, idle *time.Timer) error {
	buf := make([]byte, readChunkSize)

	for {
		n, err := body.Read(buf)
		if n > 0 {
			if idle != nil {
				idle.Reset(s.idleTimeout)
			}

			for _, line := range s.framer.Push(buf[:n]) {
				entry, ok := s.decoder.Decode(line)
				if !ok {
					continue
				}

				if ctx.Err() != nil || !s.sink(entry) {
					return ctx.Err()
				}
			}
		}

		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

// close moves the session to its terminal state
func (s *Session) close(ctx context.Context) {
	if err := s.fsm.Event(context.WithoutCancel(ctx), eventClose); err != nil {
		s.log.Debug().Err(err).Msgf("Session %d already closed", s.id)
	}
}

// cause prefers the idle timeout over the read error it provoked
func (s *Session) cause(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	if cause := context.Cause(ctx); errors.Is(cause, errors.ErrIdleTimeout) {
		return errors.ErrIdleTimeout
	}

	return err
}
