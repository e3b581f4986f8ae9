// Package events dispatches watcher events to typed subscribers.
package events

import (
	"slices"
	"sync"

	"go.trai.ch/pollwatch/internal/core/domain"
)

// Handler receives one event.
type Handler func(domain.Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus fans events out to handlers registered per kind. Handlers run on the
// publishing goroutine in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[domain.EventKind][]subscription
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[domain.EventKind][]subscription)}
}

// Subscribe registers h for kind and returns a function that removes it.
// The returned function is safe to call more than once.
func (b *Bus) Subscribe(kind domain.EventKind, h Handler) func() {
	if h == nil {
		return func() {}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[kind] = append(b.subs[kind], subscription{id: id, handler: h})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.subs[kind] = slices.DeleteFunc(b.subs[kind], func(s subscription) bool {
			return s.id == id
		})
	}
}

// Publish delivers e to the handlers subscribed to its kind. The handler list
// is copied first so handlers may subscribe or unsubscribe while running.
func (b *Bus) Publish(e domain.Event) {
	b.mu.RLock()
	subs := slices.Clone(b.subs[e.Kind()])
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(e)
	}
}

// Clear removes every handler.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.subs)
}

// Len returns the number of registered handlers across all kinds.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, subs := range b.subs {
		n += len(subs)
	}
	return n
}
