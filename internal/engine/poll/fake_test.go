package poll_test

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/pollwatch/internal/core/domain"
)

// fakeEnumerator serves an in-memory tree.
type fakeEnumerator struct {
	mu       sync.Mutex
	tree     []string
	modified []string
	created  []string
	err      error
	block    chan struct{}

	calls       map[string]int
	lastSeconds int
	lastPrune   []string
}

func newFakeEnumerator(tree ...string) *fakeEnumerator {
	return &fakeEnumerator{tree: tree, calls: map[string]int{}}
}

func (f *fakeEnumerator) setTree(tree ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tree = tree
}

func (f *fakeEnumerator) setModified(paths ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modified = paths
}

func (f *fakeEnumerator) setCreated(paths ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = paths
}

func (f *fakeEnumerator) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeEnumerator) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeEnumerator) result(op string, paths []string) (domain.PathSet, error) {
	f.calls[op]++
	if f.err != nil {
		return domain.NewPathSet(), &domain.EnumerationError{Backend: "fake", Op: op, Err: f.err}
	}
	return domain.NewPathSet(paths...), nil
}

func (f *fakeEnumerator) ListAll(ctx context.Context, _ string, prune []string) (domain.PathSet, error) {
	f.mu.Lock()
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			f.mu.Lock()
			f.calls["list_all"]++
			f.mu.Unlock()
			return domain.NewPathSet(), &domain.EnumerationError{Backend: "fake", Op: "list_all", Err: ctx.Err()}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPrune = slices.Clone(prune)
	return f.result("list_all", f.tree)
}

func (f *fakeEnumerator) ListModifiedSince(_ context.Context, _ string, seconds int, prune []string) (domain.PathSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSeconds = seconds
	f.lastPrune = slices.Clone(prune)
	return f.result("list_modified", f.modified)
}

func (f *fakeEnumerator) ListCreatedSince(_ context.Context, _ string, seconds int) (domain.PathSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSeconds = seconds
	return f.result("list_created", f.created)
}

type sinkCall struct {
	op      string
	kind    domain.EventKind
	set     []string
	deleted []string
	created []string
	err     error
}

// recordingSink captures what the scheduler forwards.
type recordingSink struct {
	mu    sync.Mutex
	calls []sinkCall
}

func (s *recordingSink) Receive(kind domain.EventKind, set domain.PathSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, sinkCall{op: "receive", kind: kind, set: set.Sorted()})
}

func (s *recordingSink) ReceivePair(deleted, created domain.PathSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, sinkCall{op: "pair", deleted: deleted.Sorted(), created: created.Sorted()})
}

func (s *recordingSink) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, sinkCall{op: "fail", err: err})
}

func (s *recordingSink) ops(op string) []sinkCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []sinkCall
	for _, c := range s.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeEnumerator) prune() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastPrune
}

func (f *fakeEnumerator) seconds() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSeconds
}
