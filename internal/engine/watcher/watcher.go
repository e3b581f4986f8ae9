// Package watcher exposes a polling directory watcher with a typed event stream.
package watcher

import (
	"os"
	"slices"
	"strconv"
	"sync"
	"time"

	"go.trai.ch/pollwatch/internal/adapters/telemetry"
	"go.trai.ch/pollwatch/internal/core/domain"
	"go.trai.ch/pollwatch/internal/core/ports"
	"go.trai.ch/pollwatch/internal/engine/aggregator"
	"go.trai.ch/pollwatch/internal/engine/events"
	"go.trai.ch/pollwatch/internal/engine/poll"
	"go.trai.ch/zerr"
)

// Options configures a Watcher. Zero values select the defaults: the dotfile
// filter, pruning of domain.DefaultExclude, the paired strategy and a
// modified round every period.
type Options struct {
	Root   string
	Period time.Duration

	// Filter replaces the default dotfile filter when set.
	Filter domain.PathFilter

	// DisablePrune turns off traversal-time pruning.
	DisablePrune bool
	// Exclude overrides the pruned directory names.
	Exclude []string

	Strategy         domain.Strategy
	ModifiedCadence  domain.Cadence
	FailureThreshold int

	Logger ports.Logger
	Tracer ports.Tracer
}

// FromConfig builds Options from a resolved configuration.
func FromConfig(cfg domain.Config, filter domain.PathFilter) Options {
	return Options{
		Root:             cfg.Root,
		Period:           cfg.Period,
		Filter:           filter,
		DisablePrune:     !cfg.Prune,
		Exclude:          cfg.Exclude,
		Strategy:         cfg.Strategy,
		ModifiedCadence:  cfg.ModifiedCadence,
		FailureThreshold: cfg.FailureThreshold,
	}
}

// Stats summarizes the activity of a Watcher.
type Stats struct {
	Rounds  poll.Stats
	Flushes uint64
	Events  uint64
}

type state uint8

const (
	stateIdle state = iota
	stateRunning
	stateStopped
)

// Watcher polls one root and publishes change events.
type Watcher struct {
	root      string
	bus       *events.Bus
	agg       *aggregator.Aggregator
	scheduler *poll.Scheduler

	mu    sync.Mutex
	state state
}

// New validates opts and builds a Watcher. Polling begins with Start.
func New(enum ports.Enumerator, opts Options) (*Watcher, error) {
	if enum == nil {
		return nil, domain.ErrNilEnumerator
	}
	if err := checkRoot(opts.Root); err != nil {
		return nil, err
	}
	if opts.Period <= 0 {
		return nil, zerr.With(domain.ErrInvalidPeriod, "period", opts.Period.String())
	}

	if opts.Strategy == "" {
		opts.Strategy = domain.StrategyPaired
	}
	if opts.ModifiedCadence == "" {
		opts.ModifiedCadence = domain.CadenceFull
	}
	if err := opts.Strategy.Validate(); err != nil {
		return nil, err
	}
	if err := opts.ModifiedCadence.Validate(); err != nil {
		return nil, err
	}
	if err := opts.ModifiedCadence.CheckPeriod(opts.Period); err != nil {
		return nil, err
	}
	if opts.FailureThreshold < 0 {
		return nil, zerr.With(domain.ErrInvalidFailureThreshold, "failure_threshold", strconv.Itoa(opts.FailureThreshold))
	}

	filter := opts.Filter
	if filter == nil {
		filter = domain.DefaultFilter
	}

	var prune []string
	if !opts.DisablePrune {
		prune = slices.Clone(opts.Exclude)
		if prune == nil {
			prune = slices.Clone(domain.DefaultExclude)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = discard{}
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = telemetry.NewNoOpTracer()
	}

	bus := events.NewBus()
	agg := aggregator.New(bus.Publish)

	w := &Watcher{
		root: opts.Root,
		bus:  bus,
		agg:  agg,
	}
	w.scheduler = poll.NewScheduler(enum, agg, logger, tracer, poll.Options{
		Root:             opts.Root,
		Period:           opts.Period,
		Prune:            prune,
		Filter:           filter,
		Strategy:         opts.Strategy,
		ModifiedCadence:  opts.ModifiedCadence,
		FailureThreshold: opts.FailureThreshold,
	})

	return w, nil
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRootNotFound.Error()), "root", root)
	}
	if !info.IsDir() {
		return zerr.With(domain.ErrRootNotDirectory, "root", root)
	}
	return nil
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Start begins polling. Calling it on a running watcher does nothing; calling
// it after Stop returns domain.ErrWatcherStopped.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case stateRunning:
		return nil
	case stateStopped:
		return domain.ErrWatcherStopped
	}
	w.state = stateRunning
	w.scheduler.Start()
	return nil
}

// Stop halts polling. Rounds in flight may still complete and publish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.state = stateStopped
	w.scheduler.Stop()
}

// Wait blocks until no round is in flight. It is meant to follow Stop.
func (w *Watcher) Wait() {
	w.scheduler.Wait()
}

// Cleanup stops the watcher and detaches every subscriber.
func (w *Watcher) Cleanup() {
	w.Stop()
	w.bus.Clear()
}

// Subscribe registers h for events of kind and returns a function that
// removes it. Handlers run on the polling goroutine, one event at a time,
// and must not block for long.
func (w *Watcher) Subscribe(kind domain.EventKind, h events.Handler) func() {
	return w.bus.Subscribe(kind, h)
}

// OnChange subscribes to coalesced change sets.
func (w *Watcher) OnChange(fn func(domain.ChangeSet)) func() {
	return w.bus.Subscribe(domain.EventChange, func(e domain.Event) {
		if ev, ok := e.(domain.ChangeEvent); ok {
			fn(ev.Change)
		}
	})
}

// OnCreated subscribes to created paths.
func (w *Watcher) OnCreated(fn func([]string)) func() {
	return w.onPaths(domain.EventCreated, fn)
}

// OnDeleted subscribes to deleted paths.
func (w *Watcher) OnDeleted(fn func([]string)) func() {
	return w.onPaths(domain.EventDeleted, fn)
}

// OnModified subscribes to modified paths.
func (w *Watcher) OnModified(fn func([]string)) func() {
	return w.onPaths(domain.EventModified, fn)
}

func (w *Watcher) onPaths(kind domain.EventKind, fn func([]string)) func() {
	return w.bus.Subscribe(kind, func(e domain.Event) {
		if ev, ok := e.(domain.PathsEvent); ok {
			fn(ev.Paths)
		}
	})
}

// OnError subscribes to round failures.
func (w *Watcher) OnError(fn func(error)) func() {
	return w.bus.Subscribe(domain.EventError, func(e domain.Event) {
		if ev, ok := e.(domain.ErrorEvent); ok {
			fn(ev.Err)
		}
	})
}

// Events streams every event kind on a channel with the given buffer. A full
// channel holds up polling until the consumer catches up. The returned
// function unsubscribes and closes the channel.
func (w *Watcher) Events(buffer int) (<-chan domain.Event, func()) {
	ch := make(chan domain.Event, buffer)
	done := make(chan struct{})

	var mu sync.RWMutex
	closed := false

	cancels := make([]func(), 0, len(domain.EventKinds))
	for _, kind := range domain.EventKinds {
		cancels = append(cancels, w.bus.Subscribe(kind, func(e domain.Event) {
			mu.RLock()
			defer mu.RUnlock()
			if closed {
				return
			}
			select {
			case ch <- e:
			case <-done:
			}
		}))
	}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			for _, cancel := range cancels {
				cancel()
			}
			close(done)
			mu.Lock()
			closed = true
			close(ch)
			mu.Unlock()
		})
	}
}

// Stats returns round, flush and event counters.
func (w *Watcher) Stats() Stats {
	return Stats{
		Rounds:  w.scheduler.Stats(),
		Flushes: w.agg.Flushes(),
		Events:  w.agg.Emitted(),
	}
}

// Pending reports which aggregator slots are filled in the current cycle.
func (w *Watcher) Pending() []domain.EventKind {
	return w.agg.Pending()
}

type discard struct{}

func (discard) Debug(string) {}
func (discard) Info(string)  {}
func (discard) Warn(string)  {}
func (discard) Error(error)  {}
