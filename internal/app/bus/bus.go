package bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

// MessageType represents the type of message
type MessageType string

// Event types
const (
	EventSessionState       MessageType = "session_state"
	EventConnectionChanged  MessageType = "connection_changed"
	EventReconnectScheduled MessageType = "reconnect_scheduled"
	EventHealthUpdated      MessageType = "health_updated"
	EventConfigReloaded     MessageType = "config_reloaded"
	EventSignal             MessageType = "signal"
)

// Message represents a bus message
type Message struct {
	Type      MessageType
	Timestamp time.Time
	Data      interface{}
	Critical  bool
}

// SessionState reports a stream session transition
type SessionState struct {
	Session uint64
	From    string
	To      string
}

// ConnectionChanged reports the connection flag flipping
type ConnectionChanged struct {
	Connected bool
}

// ReconnectScheduled reports the wait before the next session
type ReconnectScheduled struct {
	Attempt int
	Delay   time.Duration
}

// HealthUpdated reports a successful health poll
type HealthUpdated struct {
	Count int
}

// ConfigReloaded carries a freshly loaded and validated config
type ConfigReloaded struct {
	Path   string
	Config *config.Config
}

// Signal contains information about a received OS signal
type Signal struct {
	Name string
}

// Bus handles pub/sub messaging
type Bus interface {
	Subscribe(ctx context.Context) <-chan Message
	Publish(msg Message)
	Close()
}

// bus implements the Bus interface with pub/sub messaging
type bus struct {
	cfg         *config.Config
	subscribers []chan Message
	mu          sync.RWMutex
	closed      bool
	log         logger.Logger
}

// New creates a new Bus
func New(cfg *config.Config, log logger.Logger) Bus {
	return &bus{
		cfg:         cfg,
		subscribers: make([]chan Message, 0),
		log:         log,
	}
}

// Subscribe creates a new subscription channel
func (b *bus) Subscribe(ctx context.Context) <-chan Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Message, b.cfg.Bus.Buffer)

	if b.closed {
		close(ch)
		return ch
	}

	b.subscribers = append(b.subscribers, ch)

	go func() {
		<-ctx.Done()
		b.unsubscribe(ch)
	}()

	return ch
}

// Publish sends a message to all subscribers
func (b *bus) Publish(msg Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	msg.Timestamp = time.Now()

	if b.log != nil {
		b.log.Debug().Msgf("%s %s", msg.Type, formatData(msg.Data))
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			if msg.Critical {
				go func(c chan Message, m Message) {
					defer func() { recover() }()

					c <- m
				}(ch, msg)
			}
		}
	}
}

// Close closes all subscriber channels
func (b *bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true

	for _, ch := range b.subscribers {
		close(ch)
	}

	b.subscribers = nil
}

func (b *bus) unsubscribe(ch chan Message) {
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

func formatData(data interface{}) string {
	switch d := data.(type) {
	case SessionState:
		return fmt.Sprintf("{session: %d, %s -> %s}", d.Session, d.From, d.To)
	case ConnectionChanged:
		return fmt.Sprintf("{connected: %t}", d.Connected)
	case ReconnectScheduled:
		return fmt.Sprintf("{attempt: %d, delay: %s}", d.Attempt, d.Delay)
	case HealthUpdated:
		return fmt.Sprintf("{snapshots: %d}", d.Count)
	case ConfigReloaded:
		return fmt.Sprintf("{path: %s}", d.Path)
	case Signal:
		return fmt.Sprintf("{signal: %s}", d.Name)
	default:
		return fmt.Sprintf("%+v", data)
	}
}

// NoOp returns a no-op bus for when messaging is disabled
func NoOp() Bus {
	return &noOpBus{}
}

// noOpBus implements Bus interface with no-op methods for testing
type noOpBus struct{}

func (n *noOpBus) Subscribe(ctx context.Context) <-chan Message {
	ch := make(chan Message)

	go func() {
		<-ctx.Done()
		close(ch)
	}()

	return ch
}

func (n *noOpBus) Publish(msg Message) {}
func (n *noOpBus) Close()              {}
