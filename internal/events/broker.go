package events

import (
	"sync"
	"time"
)

// Event describes a store mutation. Events feed the live dashboard
// websocket and cache invalidation; they carry no entity payload.
type Event struct {
	Entity string    `json:"entity"`
	Type   string    `json:"type"`
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}

const (
	TypeCreated = "created"
	TypeUpdated = "updated"
	TypeDeleted = "deleted"
)

// Broker is an in-process fanout of store change events. Slow subscribers
// drop events rather than block the publishing store.
type Broker struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

// New creates a broker.
func New() *Broker {
	return &Broker{subs: map[int]chan Event{}}
}

// Publish delivers an event to every subscriber. A nil broker is a no-op so
// stores can be constructed without one in tests.
func (b *Broker) Publish(e Event) {
	if b == nil {
		return
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a new subscriber and returns its channel plus a
// cancel function that must be called when done.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan Event, 64)
	b.subs[id] = ch
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}
