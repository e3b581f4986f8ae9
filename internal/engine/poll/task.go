// Package poll drives the periodic enumeration rounds of a watcher.
package poll

import (
	"context"
	"sync"
	"time"
)

// Task runs fn every period. The next run is scheduled only after the
// previous one returns, so runs of one Task never overlap.
type Task struct {
	name   string
	period time.Duration
	fn     func(context.Context)

	mu      sync.Mutex
	timer   *time.Timer
	started bool
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
	running sync.WaitGroup
}

// NewTask creates a stopped Task.
func NewTask(name string, period time.Duration, fn func(context.Context)) *Task {
	return &Task{name: name, period: period, fn: fn}
}

// Name returns the name the Task was created with.
func (t *Task) Name() string { return t.name }

// Period returns the interval between the end of one run and the start of the next.
func (t *Task) Period() time.Duration { return t.period }

// Start schedules the first run one period from now. It does nothing if the
// Task was already started or stopped.
func (t *Task) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started || t.stopped {
		return
	}
	t.started = true
	t.ctx, t.cancel = context.WithCancel(context.Background())
	t.timer = time.AfterFunc(t.period, t.fire)
}

// Stop cancels the pending timer and the context of an in-flight run. A run
// already in progress completes but does not reschedule.
func (t *Task) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.cancel != nil {
		t.cancel()
	}
}

// Wait blocks until no run is in progress. Call it after Stop.
func (t *Task) Wait() {
	t.running.Wait()
}

func (t *Task) fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	ctx := t.ctx
	t.running.Add(1)
	t.mu.Unlock()

	defer t.running.Done()
	t.fn(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.timer.Reset(t.period)
}
