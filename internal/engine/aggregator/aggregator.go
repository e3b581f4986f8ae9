// Package aggregator correlates per-kind poll results into coalesced events.
package aggregator

import (
	"slices"
	"sync"
	"sync/atomic"

	"go.trai.ch/pollwatch/internal/core/domain"
)

// Emitter receives the events produced by a flush.
type Emitter func(domain.Event)

// buffer holds the results received since the last flush. A nil slot has not
// been received in this cycle. rawModified keeps the last modified set as
// received so the correction can be redone when created changes.
type buffer struct {
	created     *domain.PathSet
	deleted     *domain.PathSet
	modified    *domain.PathSet
	rawModified *domain.PathSet
}

func (b *buffer) store(kind domain.EventKind, set domain.PathSet) {
	switch kind {
	case domain.EventCreated:
		b.created = &set
	case domain.EventDeleted:
		b.deleted = &set
	case domain.EventModified:
		b.rawModified = &set
	}
	b.correct()
}

// correct reports a path created in this cycle only as created.
func (b *buffer) correct() {
	switch {
	case b.rawModified == nil:
		b.modified = nil
	case b.created == nil:
		b.modified = b.rawModified
	default:
		m := domain.OneWayDiff(*b.rawModified, *b.created)
		b.modified = &m
	}
}

func (b *buffer) ready() bool {
	return b.created != nil && b.deleted != nil && b.modified != nil
}

func (b *buffer) drain() domain.ChangeSet {
	cs := domain.ChangeSet{
		Created:  b.created.Sorted(),
		Deleted:  b.deleted.Sorted(),
		Modified: b.modified.Sorted(),
	}
	*b = buffer{}
	return cs
}

// Aggregator buffers per-kind results and flushes once created, deleted and
// modified have all been received. Flushes and error events are dispatched
// while the aggregator lock is held, so emitters observe them strictly in
// order. An emitter must not call back into the same Aggregator.
type Aggregator struct {
	mu      sync.Mutex
	buf     buffer
	emit    Emitter
	flushes atomic.Uint64
	events  atomic.Uint64
}

// New creates an Aggregator that sends events to emit.
func New(emit Emitter) *Aggregator {
	if emit == nil {
		emit = func(domain.Event) {}
	}
	return &Aggregator{emit: emit}
}

// Receive stores a single-kind result. kind must be EventCreated,
// EventDeleted or EventModified; other kinds are ignored.
func (a *Aggregator) Receive(kind domain.EventKind, set domain.PathSet) {
	if !isSlot(kind) {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.buf.store(kind, set)
	a.flushLocked()
}

// ReceivePair stores the deleted and created results of one full-tree round as
// a single update.
func (a *Aggregator) ReceivePair(deleted, created domain.PathSet) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.buf.store(domain.EventDeleted, deleted)
	a.buf.store(domain.EventCreated, created)
	a.flushLocked()
}

// Fail emits an error event immediately. Buffered slots are left untouched.
func (a *Aggregator) Fail(err error) {
	if err == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.events.Add(1)
	a.emit(domain.ErrorEvent{Err: err})
}

// Pending reports which slots have been received since the last flush.
func (a *Aggregator) Pending() []domain.EventKind {
	a.mu.Lock()
	defer a.mu.Unlock()

	var kinds []domain.EventKind
	if a.buf.created != nil {
		kinds = append(kinds, domain.EventCreated)
	}
	if a.buf.deleted != nil {
		kinds = append(kinds, domain.EventDeleted)
	}
	if a.buf.modified != nil {
		kinds = append(kinds, domain.EventModified)
	}
	return kinds
}

// Flushes returns how many complete cycles have been drained, including
// cycles that carried no changes.
func (a *Aggregator) Flushes() uint64 {
	return a.flushes.Load()
}

// Emitted returns how many events have been dispatched.
func (a *Aggregator) Emitted() uint64 {
	return a.events.Load()
}

func (a *Aggregator) flushLocked() {
	if !a.buf.ready() {
		return
	}

	cs := a.buf.drain()
	a.flushes.Add(1)
	if cs.IsEmpty() {
		return
	}

	a.send(domain.ChangeEvent{Change: cs})
	a.sendPaths(domain.EventCreated, cs.Created)
	a.sendPaths(domain.EventDeleted, cs.Deleted)
	a.sendPaths(domain.EventModified, cs.Modified)
}

func (a *Aggregator) sendPaths(kind domain.EventKind, paths []string) {
	if len(paths) == 0 {
		return
	}
	a.send(domain.PathsEvent{EventKind: kind, Paths: slices.Clone(paths)})
}

func (a *Aggregator) send(e domain.Event) {
	a.events.Add(1)
	a.emit(e)
}

func isSlot(kind domain.EventKind) bool {
	return kind == domain.EventCreated || kind == domain.EventDeleted || kind == domain.EventModified
}
