package stream

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"hatchlog/internal/app/bus"
	"hatchlog/internal/app/errors"
	"hatchlog/internal/app/logs"
	"hatchlog/internal/app/transport"
	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

// Stats counts tailer activity since construction
type Stats struct {
	Sessions uint64
	Appended uint64
	Dropped  uint64
	Evicted  uint64
	LastID   uint64
}

// Tailer keeps a live tail of the daemon log stream
type Tailer interface {
	Start(ctx context.Context) error
	Stop()
	State() SessionState
	Connected() bool
	Entries() []logs.Entry
	Filtered(filter logs.Filter) []logs.Entry
	Clear()
	Stats() Stats
	Subscribe(ctx context.Context) <-chan logs.Change
	Reconfigure(cfg *config.Config) error
}

type tailer struct {
	url         string
	idleTimeout time.Duration
	doer        transport.Doer
	buffer      logs.Buffer
	decoder     *logs.Decoder
	policy      *Policy
	bus         bus.Bus
	log         logger.Logger

	mu      sync.Mutex
	parent  context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	running bool

	state     atomic.Value
	connected atomic.Bool
	sessions  atomic.Uint64
	appended  atomic.Uint64
}

// NewTailer creates a stopped tailer. The buffer and id counter live as long as the tailer.
func NewTailer(cfg *config.Config, doer transport.Doer, b bus.Bus, log logger.Logger) Tailer {
	t := &tailer{
		url:         cfg.StreamURL(),
		idleTimeout: cfg.Stream.IdleTimeout,
		doer:        doer,
		buffer:      logs.NewBuffer(cfg.Stream.Buffer, cfg.Bus.Buffer),
		decoder:     logs.NewDecoder(),
		policy:      NewPolicy(cfg.Stream.ReconnectDelay, cfg.Stream.MaxReconnectDelay),
		bus:         b,
		log:         log,
	}

	t.state.Store(StateIdle)

	return t
}

// Start begins the connect/reconnect loop. It returns immediately.
func (t *tailer) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return errors.ErrTailerAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	t.parent = ctx
	t.cancel = cancel
	t.done = done
	t.running = true

	t.log.Info().Msgf("Tailing %s", t.url)

	go t.run(runCtx, done)

	return nil
}

// Stop cancels the pending reconnect and the in-flight session and waits for both.
// No buffer mutation happens after Stop returns.
func (t *tailer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	t.cancel()
	<-t.done

	t.running = false
	t.cancel = nil
	t.done = nil

	t.setState(StateIdle)
	t.setConnected(false)
	t.policy.Reset()

	t.log.Info().Msg("Tailer stopped")
}

// State returns the connection state of the current session
func (t *tailer) State() SessionState {
	return SessionStateOf(t.state.Load().(State))
}

// Connected reports whether a session is streaming right now
func (t *tailer) Connected() bool {
	return t.connected.Load()
}

// Entries returns the tail oldest first
func (t *tailer) Entries() []logs.Entry {
	return t.buffer.Snapshot()
}

// Filtered returns the visible part of the tail
func (t *tailer) Filtered(filter logs.Filter) []logs.Entry {
	return logs.Apply(t.buffer.Snapshot(), filter)
}

// Clear empties the tail without touching the session or the id counter
func (t *tailer) Clear() {
	t.buffer.Clear()
	t.log.Debug().Msg("Tail cleared")
}

// Stats returns activity counters
func (t *tailer) Stats() Stats {
	return Stats{
		Sessions: t.sessions.Load(),
		Appended: t.appended.Load(),
		Dropped:  t.decoder.Dropped(),
		Evicted:  t.buffer.Evicted(),
		LastID:   t.decoder.LastID(),
	}
}

// Subscribe returns buffer changes until ctx is done
func (t *tailer) Subscribe(ctx context.Context) <-chan logs.Change {
	return t.buffer.Subscribe(ctx)
}

// Reconfigure applies new endpoint and reconnect settings, restarting a running tailer
// unless the context it was started with is already done. The buffer and its capacity are kept.
func (t *tailer) Reconfigure(cfg *config.Config) error {
	t.mu.Lock()
	running := t.running
	parent := t.parent
	t.mu.Unlock()

	t.Stop()

	t.mu.Lock()
	t.url = cfg.StreamURL()
	t.idleTimeout = cfg.Stream.IdleTimeout
	t.policy = NewPolicy(cfg.Stream.ReconnectDelay, cfg.Stream.MaxReconnectDelay)
	t.mu.Unlock()

	if cfg.Stream.Buffer != t.buffer.Cap() {
		t.log.Warn().Msgf("Buffer size change to %d applies after restart", cfg.Stream.Buffer)
	}

	if !running || parent.Err() != nil {
		return nil
	}

	return t.Start(parent)
}

// run is the only goroutine that appends to the buffer
func (t *tailer) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	attempt := 0

	for {
		session := NewSession(SessionOptions{
			ID:           t.sessions.Add(1),
			URL:          t.url,
			Doer:         t.doer,
			Decoder:      t.decoder,
			Sink:         t.sink(ctx),
			OnTransition: t.onTransition,
			IdleTimeout:  t.idleTimeout,
			Log:          t.log,
		})

		err := session.Run(ctx)

		if ctx.Err() != nil {
			return
		}

		if session.Streamed() {
			t.policy.Reset()

			attempt = 0
		}

		attempt++
		delay := t.policy.Next()

		if err != nil {
			t.log.Warn().Err(err).Msgf("Stream session %d failed, reconnecting in %s", session.ID(), delay)
		} else {
			t.log.Info().Msgf("Stream session %d ended, reconnecting in %s", session.ID(), delay)
		}

		if dropped := t.decoder.Dropped(); dropped > 0 {
			t.log.Debug().Msgf("Dropped %d malformed lines so far", dropped)
		}

		t.bus.Publish(bus.Message{
			Type: bus.EventReconnectScheduled,
			Data: bus.ReconnectScheduled{Attempt: attempt, Delay: delay},
		})

		timer := time.NewTimer(delay)

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// sink appends entries until ctx is cancelled
func (t *tailer) sink(ctx context.Context) Sink {
	return func(entry logs.Entry) bool {
		if ctx.Err() != nil {
			return false
		}

		t.buffer.Append(entry)
		t.appended.Add(1)

		return true
	}
}

// onTransition mirrors session state into the tailer flags
func (t *tailer) onTransition(session uint64, from, to State) {
	t.setState(to)
	t.setConnected(to == StateStreaming)

	t.bus.Publish(bus.Message{
		Type: bus.EventSessionState,
		Data: bus.SessionState{Session: session, From: string(from), To: string(to)},
	})
}

func (t *tailer) setState(state State) {
	t.state.Store(state)
}

// setConnected publishes only real flips of the flag
func (t *tailer) setConnected(connected bool) {
	if t.connected.Swap(connected) == connected {
		return
	}

	t.bus.Publish(bus.Message{
		Type:     bus.EventConnectionChanged,
		Data:     bus.ConnectionChanged{Connected: connected},
		Critical: true,
	})
}
