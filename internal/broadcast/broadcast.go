package broadcast

import (
	"log/slog"
	"sync"
	"time"
)

// Subscriber channel buffer. A dashboard that stops reading loses events
// rather than slowing down Publish.
const subscriberBuffer = 8

// Event is a stateless "something changed" signal delivered to dashboard
// viewers. Missed events are not replayed.
type Event struct {
	Kind      string    `json:"kind"`
	VisitorID int64     `json:"visitor_id"`
	At        time.Time `json:"at"`
}

// Broadcaster fans out events to currently connected subscribers. One
// instance per server process, passed explicitly to whoever publishes.
type Broadcaster struct {
	mu     sync.RWMutex
	nextID int64
	subs   map[int64]chan Event

	logger *slog.Logger
}

func New() *Broadcaster {
	return &Broadcaster{
		subs:   make(map[int64]chan Event),
		logger: slog.With("component", "broadcast"),
	}
}

// Subscriber is a handle to a broadcast subscription. Close must be called
// when the viewer disconnects.
type Subscriber struct {
	id int64
	C  <-chan Event

	b *Broadcaster
}

func (s *Subscriber) Close() {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if ch, ok := s.b.subs[s.id]; ok {
		delete(s.b.subs, s.id)
		close(ch)
	}
}

func (b *Broadcaster) Subscribe() *Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	ch := make(chan Event, subscriberBuffer)
	b.subs[b.nextID] = ch

	return &Subscriber{id: b.nextID, C: ch, b: b}
}

// Publish delivers the event to every currently registered subscriber.
// Delivery is best-effort and never blocks: a subscriber whose buffer is
// full simply misses the event.
func (b *Broadcaster) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.logger.Debug("Dropping event for slow subscriber", "subscriber", id, "kind", event.Kind)
		}
	}
}

// Count returns the number of connected subscribers.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
