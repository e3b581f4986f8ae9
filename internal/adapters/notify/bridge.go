// Package notify presents a polling watcher through the fsnotify event types,
// for code written against fsnotify.Watcher.
package notify

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/pollwatch/internal/core/domain"
	"go.trai.ch/pollwatch/internal/engine/events"
)

// Source is the subscription surface of a watcher.
type Source interface {
	Subscribe(kind domain.EventKind, h events.Handler) func()
}

var ops = map[domain.EventKind]fsnotify.Op{
	domain.EventCreated:  fsnotify.Create,
	domain.EventModified: fsnotify.Write,
	domain.EventDeleted:  fsnotify.Remove,
}

// Bridge forwards per-kind events from a Source as fsnotify events. Event
// names are the watched root joined with the relative path.
type Bridge struct {
	root   string
	events chan fsnotify.Event
	errors chan error
	done   chan struct{}
	cancel []func()

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

// New subscribes to src. A full channel holds up polling until it is drained
// or the Bridge is closed.
func New(src Source, root string, buffer int) *Bridge {
	b := &Bridge{
		root:   root,
		events: make(chan fsnotify.Event, buffer),
		errors: make(chan error, buffer),
		done:   make(chan struct{}),
	}

	for kind := range ops {
		b.cancel = append(b.cancel, src.Subscribe(kind, b.forward))
	}
	b.cancel = append(b.cancel, src.Subscribe(domain.EventError, b.forwardError))
	return b
}

// Events returns the event channel. It is closed by Close.
func (b *Bridge) Events() <-chan fsnotify.Event {
	return b.events
}

// Errors returns the error channel. It is closed by Close.
func (b *Bridge) Errors() <-chan error {
	return b.errors
}

// Close unsubscribes and closes both channels. It is safe to call more than once.
func (b *Bridge) Close() error {
	b.once.Do(func() {
		for _, cancel := range b.cancel {
			cancel()
		}
		close(b.done)

		b.mu.Lock()
		defer b.mu.Unlock()
		b.closed = true
		close(b.events)
		close(b.errors)
	})
	return nil
}

func (b *Bridge) forward(e domain.Event) {
	ev, ok := e.(domain.PathsEvent)
	if !ok {
		return
	}
	op := ops[ev.EventKind]

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	for _, p := range ev.Paths {
		select {
		case b.events <- fsnotify.Event{Name: filepath.Join(b.root, filepath.FromSlash(p)), Op: op}:
		case <-b.done:
			return
		}
	}
}

func (b *Bridge) forwardError(e domain.Event) {
	ev, ok := e.(domain.ErrorEvent)
	if !ok {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	select {
	case b.errors <- ev.Err:
	case <-b.done:
	}
}
