package watcher_test

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/pollwatch/internal/core/domain"
)

// treeEnumerator serves an in-memory tree. The modified set stays fixed for
// the life of a test so rounds firing at the same instant commute.
type treeEnumerator struct {
	mu       sync.Mutex
	tree     []string
	modified []string
	err      error
	prune    []string
	calls    int
}

func (e *treeEnumerator) set(tree ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tree = tree
}

func (e *treeEnumerator) fail(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
}

func (e *treeEnumerator) lastPrune() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prune
}

func (e *treeEnumerator) listCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func (e *treeEnumerator) ListAll(_ context.Context, _ string, prune []string) (domain.PathSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	e.prune = slices.Clone(prune)
	if e.err != nil {
		return domain.NewPathSet(), &domain.EnumerationError{Backend: "fake", Op: "list_all", Err: e.err}
	}

	var out domain.PathSet
	for _, p := range e.tree {
		if !pruned(p, prune) {
			out.Add(p)
		}
	}
	return out, nil
}

func (e *treeEnumerator) ListModifiedSince(_ context.Context, _ string, _ int, _ []string) (domain.PathSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return domain.NewPathSet(), &domain.EnumerationError{Backend: "fake", Op: "list_modified", Err: e.err}
	}
	return domain.NewPathSet(e.modified...), nil
}

func (e *treeEnumerator) ListCreatedSince(_ context.Context, _ string, _ int) (domain.PathSet, error) {
	return domain.NewPathSet(), nil
}

// pruned reports whether any directory segment of p is in prune.
func pruned(p string, prune []string) bool {
	segs := strings.Split(p, "/")
	for _, seg := range segs[:len(segs)-1] {
		if slices.Contains(prune, seg) {
			return true
		}
	}
	return false
}

// collector records events in delivery order.
type collector struct {
	mu     sync.Mutex
	events []domain.Event
}

func (c *collector) add(e domain.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *collector) all() []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.events)
}

func (c *collector) kinds() []domain.EventKind {
	var out []domain.EventKind
	for _, e := range c.all() {
		out = append(out, e.Kind())
	}
	return out
}

// pathLog accumulates paths from a per-kind subscription.
type pathLog struct {
	mu    sync.Mutex
	paths []string
}

func (l *pathLog) add(paths []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paths = append(l.paths, paths...)
}

func (l *pathLog) get() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.paths)
}

// counter counts callbacks.
type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) inc() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
}

func (c *counter) get() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
