package services

import (
	"sync"
	"time"
)

type Event struct {
	SessionID string
	Store     string
	Action    string
	At        time.Time
}

// EventBus fans store actions out to subscribers. Handlers run synchronously
// on the goroutine that finished the action, after the store has released
// its lock, so a handler may read any store.
type EventBus struct {
	sessionID string

	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

func NewEventBus(sessionID string) *EventBus {
	return &EventBus{
		sessionID: sessionID,
		subs:      make(map[int]func(Event)),
	}
}

// Subscribe registers fn and returns a function that removes it.
func (b *EventBus) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

func (b *EventBus) publish(store, action string) {
	if b == nil {
		return
	}

	b.mu.RLock()
	handlers := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	ev := Event{SessionID: b.sessionID, Store: store, Action: action, At: time.Now()}
	for _, fn := range handlers {
		fn(ev)
	}
}
