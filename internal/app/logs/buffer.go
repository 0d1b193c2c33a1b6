package logs

import (
	"context"
	"sync"
)

// DefaultCapacity is the number of entries kept when no capacity is configured
const DefaultCapacity = 1000

// ChangeKind identifies a buffer mutation
type ChangeKind int

// Buffer mutations
const (
	ChangeAppended ChangeKind = iota
	ChangeCleared
)

// Change is delivered to subscribers after every buffer mutation
type Change struct {
	Kind    ChangeKind
	Entry   Entry // set for ChangeAppended
	Len     int
	Evicted bool // an old entry was dropped to make room
}

// Buffer is the bounded tail of recent entries
type Buffer interface {
	Append(entry Entry)
	Clear()
	Snapshot() []Entry
	Len() int
	Cap() int
	Evicted() uint64
	Subscribe(ctx context.Context) <-chan Change
}

// buffer is a fixed-size ring; appends past capacity overwrite the oldest entry
type buffer struct {
	mu          sync.RWMutex
	entries     []Entry
	head        int
	count       int
	evicted     uint64
	subBuffer   int
	subscribers []chan Change
}

// NewBuffer creates a buffer holding at most capacity entries; subBuffer sizes subscriber channels
func NewBuffer(capacity, subBuffer int) Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	if subBuffer <= 0 {
		subBuffer = 1
	}

	return &buffer{
		entries:   make([]Entry, capacity),
		subBuffer: subBuffer,
	}
}

// Append adds an entry at the tail, evicting the oldest entry when full
func (b *buffer) Append(entry Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capacity := len(b.entries)
	evicted := false

	if b.count < capacity {
		b.entries[(b.head+b.count)%capacity] = entry
		b.count++
	} else {
		b.entries[b.head] = entry
		b.head = (b.head + 1) % capacity
		b.evicted++
		evicted = true
	}

	b.notify(Change{Kind: ChangeAppended, Entry: entry, Len: b.count, Evicted: evicted})
}

// Clear empties the buffer
func (b *buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	clear(b.entries)
	b.head = 0
	b.count = 0

	b.notify(Change{Kind: ChangeCleared})
}

// Snapshot returns the retained entries oldest first
func (b *buffer) Snapshot() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Entry, b.count)
	for i := range b.count {
		out[i] = b.entries[(b.head+i)%len(b.entries)]
	}

	return out
}

// Len returns the number of retained entries
func (b *buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.count
}

// Cap returns the buffer capacity
func (b *buffer) Cap() int {
	return len(b.entries)
}

// Evicted returns how many entries were dropped to respect capacity
func (b *buffer) Evicted() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.evicted
}

// Subscribe returns a channel of changes that closes when ctx is done.
// Slow subscribers miss changes rather than blocking appends; Snapshot is always current.
func (b *buffer) Subscribe(ctx context.Context) <-chan Change {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Change, b.subBuffer)
	b.subscribers = append(b.subscribers, ch)

	go func() {
		<-ctx.Done()
		b.unsubscribe(ch)
	}()

	return ch
}

// notify must be called with the write lock held
func (b *buffer) notify(change Change) {
	for _, ch := range b.subscribers {
		select {
		case ch <- change:
		default:
		}
	}
}

func (b *buffer) unsubscribe(ch chan Change) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)

			close(ch)

			break
		}
	}
}
