package watcher

import (
	"slices"
	"sync"
	"time"
)

// Debouncer collapses a burst of triggers into one callback after the burst goes quiet
type Debouncer interface {
	Trigger(key string)
	Pending() int
	Stop()
}

type debouncer struct {
	quiet    time.Duration
	callback func(keys []string)
	mu       sync.Mutex
	timer    *time.Timer
	pending  map[string]struct{}
	gen      uint64
	stopped  bool
}

// NewDebouncer creates a debouncer that waits quiet after the last trigger
func NewDebouncer(quiet time.Duration, callback func(keys []string)) Debouncer {
	return &debouncer{
		quiet:    quiet,
		callback: callback,
		pending:  make(map[string]struct{}),
	}
}

// Trigger records a key and restarts the quiet period
func (d *debouncer) Trigger(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending[key] = struct{}{}
	d.gen++

	if d.timer != nil {
		d.timer.Stop()
	}

	gen := d.gen
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(gen) })
}

// Pending returns how many distinct keys are waiting
func (d *debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.pending)
}

// Stop drops pending keys; later triggers are ignored
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	clear(d.pending)
}

// fire runs the callback unless a newer trigger superseded this timer
func (d *debouncer) fire(gen uint64) {
	d.mu.Lock()

	if d.stopped || gen != d.gen || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}

	keys := make([]string, 0, len(d.pending))
	for k := range d.pending {
		keys = append(keys, k)
	}

	slices.Sort(keys)
	clear(d.pending)
	d.timer = nil

	d.mu.Unlock()

	d.callback(keys)
}
