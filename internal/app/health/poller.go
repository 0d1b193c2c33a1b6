package health

import (
	"context"
	"sync"
	"time"

	"hatchlog/internal/app/bus"
	"hatchlog/internal/app/errors"
	"hatchlog/internal/config/logger"
)

// Poller keeps the latest health snapshot list
type Poller interface {
	Start(ctx context.Context) error
	Stop()
	Refresh(ctx context.Context) error
	Snapshots() []Snapshot
	Lookup(project, service string) (Snapshot, bool)
	StatusOf(project, service string) Status
	Reconfigure(client Client, interval time.Duration) error
}

type poller struct {
	client   Client
	interval time.Duration
	bus      bus.Bus
	log      logger.Logger

	mu        sync.RWMutex
	snapshots []Snapshot

	lifecycle sync.Mutex
	parent    context.Context
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewPoller creates a stopped poller with an empty list
func NewPoller(client Client, interval time.Duration, b bus.Bus, log logger.Logger) Poller {
	return &poller{
		client:    client,
		interval:  interval,
		bus:       b,
		log:       log,
		snapshots: []Snapshot{},
	}
}

// Start polls once immediately and then on every interval
func (p *poller) Start(ctx context.Context) error {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	if p.done != nil {
		return errors.ErrPollerAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.parent = ctx
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(runCtx, p.done)

	return nil
}

// Stop cancels the in-flight poll and the ticker and waits for both
func (p *poller) Stop() {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	if p.done == nil {
		return
	}

	p.cancel()
	<-p.done

	p.cancel = nil
	p.done = nil
}

// Reconfigure swaps the client and interval, restarting a running poller
// unless the context it was started with is already done
func (p *poller) Reconfigure(client Client, interval time.Duration) error {
	p.lifecycle.Lock()
	running := p.done != nil
	parent := p.parent
	p.lifecycle.Unlock()

	p.Stop()

	p.mu.Lock()
	p.client = client
	p.interval = interval
	p.mu.Unlock()

	if !running || parent.Err() != nil {
		return nil
	}

	return p.Start(parent)
}

// Refresh polls now. Failures keep the previous list and are returned to the caller only.
func (p *poller) Refresh(ctx context.Context) error {
	p.mu.RLock()
	client := p.client
	p.mu.RUnlock()

	snapshots, err := client.Fetch(ctx)
	if err != nil {
		p.log.Debug().Err(err).Msg("Health poll failed, keeping previous snapshots")
		return err
	}

	p.mu.Lock()
	p.snapshots = snapshots
	p.mu.Unlock()

	p.bus.Publish(bus.Message{
		Type: bus.EventHealthUpdated,
		Data: bus.HealthUpdated{Count: len(snapshots)},
	})

	return nil
}

// Snapshots returns a copy of the latest list
func (p *poller) Snapshots() []Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Snapshot, len(p.snapshots))
	copy(out, p.snapshots)

	return out
}

// Lookup returns the first snapshot for the exact (project, service) pair
func (p *poller) Lookup(project, service string) (Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, s := range p.snapshots {
		if s.Project == project && s.Service == service {
			return s, true
		}
	}

	return Snapshot{}, false
}

// StatusOf returns the status for a pair, or unknown when there is none
func (p *poller) StatusOf(project, service string) Status {
	if s, ok := p.Lookup(project, service); ok {
		return s.Status
	}

	return StatusUnknown
}

func (p *poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.mu.RLock()
	interval := p.interval
	p.mu.RUnlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		_ = p.Refresh(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
