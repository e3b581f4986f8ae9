package poll

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/pollwatch/internal/core/domain"
	"go.trai.ch/pollwatch/internal/core/ports"
)

// Lookback is how far back the modified and created rounds look. It is
// rounded up to whole seconds before reaching the enumerator.
const Lookback = time.Second

// Round names a kind of poll round.
type Round string

const (
	RoundFull     Round = "full"
	RoundModified Round = "modified"
	RoundCreated  Round = "created"
)

// Sink receives round results. *aggregator.Aggregator implements it.
type Sink interface {
	Receive(kind domain.EventKind, set domain.PathSet)
	ReceivePair(deleted, created domain.PathSet)
	Fail(err error)
}

// Options configures a Scheduler.
type Options struct {
	Root             string
	Period           time.Duration
	Prune            []string
	Filter           domain.PathFilter
	Strategy         domain.Strategy
	ModifiedCadence  domain.Cadence
	FailureThreshold int
}

// RoundStats counts the outcomes of one round kind.
type RoundStats struct {
	Runs     uint64
	Failures uint64
}

// Stats reports per-round counters.
type Stats map[Round]RoundStats

type round struct {
	name  Round
	task  *Task
	runs  atomic.Uint64
	fails atomic.Uint64

	// consecutive is only touched by the round's own task.
	consecutive int
}

// Scheduler runs the full-tree round and the modified round, plus the created
// round under the separate strategy, and forwards their results to a Sink.
type Scheduler struct {
	enum   ports.Enumerator
	sink   Sink
	logger ports.Logger
	tracer ports.Tracer
	opts   Options

	// snapshot is read and written only by the full-tree round.
	snapshot *domain.PathSet

	rounds []*round

	mu      sync.Mutex
	started bool
}

// NewScheduler wires the rounds for opts. Validation of opts is the caller's job.
func NewScheduler(enum ports.Enumerator, sink Sink, logger ports.Logger, tracer ports.Tracer, opts Options) *Scheduler {
	if opts.Filter == nil {
		opts.Filter = domain.AcceptAll
	}
	if opts.Strategy == "" {
		opts.Strategy = domain.StrategyPaired
	}

	s := &Scheduler{
		enum:   enum,
		sink:   sink,
		logger: logger,
		tracer: tracer,
		opts:   opts,
	}

	s.add(RoundFull, opts.Period, s.runFull)
	s.add(RoundModified, opts.ModifiedCadence.Interval(opts.Period), s.runModified)
	if opts.Strategy == domain.StrategySeparate {
		s.add(RoundCreated, opts.Period, s.runCreated)
	}

	return s
}

func (s *Scheduler) add(name Round, period time.Duration, run func(context.Context, *round)) {
	r := &round{name: name}
	r.task = NewTask(string(name), period, func(ctx context.Context) { run(ctx, r) })
	s.rounds = append(s.rounds, r)
}

// Start schedules every round. Each first run happens one period from now.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true
	for _, r := range s.rounds {
		r.task.Start()
	}
}

// Stop cancels every round. In-flight rounds finish without rescheduling.
func (s *Scheduler) Stop() {
	for _, r := range s.rounds {
		r.task.Stop()
	}
}

// Wait blocks until no round is in flight.
func (s *Scheduler) Wait() {
	for _, r := range s.rounds {
		r.task.Wait()
	}
}

// Stats returns a copy of the per-round counters.
func (s *Scheduler) Stats() Stats {
	out := make(Stats, len(s.rounds))
	for _, r := range s.rounds {
		out[r.name] = RoundStats{Runs: r.runs.Load(), Failures: r.fails.Load()}
	}
	return out
}

// Intervals returns the period of every scheduled round.
func (s *Scheduler) Intervals() map[Round]time.Duration {
	out := make(map[Round]time.Duration, len(s.rounds))
	for _, r := range s.rounds {
		out[r.name] = r.task.Period()
	}
	return out
}

func lookbackSeconds() int {
	return int(math.Ceil(Lookback.Seconds()))
}

func (s *Scheduler) runFull(ctx context.Context, r *round) {
	ctx, span := s.tracer.Start(ctx, "poll.full")
	defer span.End()
	r.runs.Add(1)

	start := time.Now()
	listed, err := s.enum.ListAll(ctx, s.opts.Root, s.opts.Prune)
	if err != nil {
		s.fail(ctx, r, span, err)
		return
	}
	listedAt := time.Now()

	tree := listed.Filter(s.opts.Filter)
	filteredAt := time.Now()
	r.consecutive = 0

	span.SetAttribute("paths", tree.Len())
	span.SetAttribute("fingerprint", tree.Fingerprint())

	if s.snapshot == nil {
		s.snapshot = &tree
		span.SetAttribute("baseline", true)
		s.logger.Debug(fmt.Sprintf("baseline: %d paths, fingerprint %016x", tree.Len(), tree.Fingerprint()))
		return
	}

	if s.opts.Strategy == domain.StrategySeparate {
		deleted := domain.OneWayDiff(*s.snapshot, tree)
		s.snapshot = &tree
		s.logTimings(r, start, listedAt, filteredAt, tree.Len())
		s.sink.Receive(domain.EventDeleted, deleted)
		return
	}

	deleted, created := domain.TwoWayDiff(*s.snapshot, tree)
	s.snapshot = &tree
	span.SetAttribute("created", created.Len())
	span.SetAttribute("deleted", deleted.Len())
	s.logTimings(r, start, listedAt, filteredAt, tree.Len())
	s.sink.ReceivePair(deleted, created)
}

func (s *Scheduler) runModified(ctx context.Context, r *round) {
	ctx, span := s.tracer.Start(ctx, "poll.modified")
	defer span.End()
	r.runs.Add(1)

	listed, err := s.enum.ListModifiedSince(ctx, s.opts.Root, lookbackSeconds(), s.opts.Prune)
	if err != nil {
		s.fail(ctx, r, span, err)
		return
	}
	r.consecutive = 0

	modified := listed.Filter(s.opts.Filter)
	span.SetAttribute("paths", modified.Len())
	s.sink.Receive(domain.EventModified, modified)
}

func (s *Scheduler) runCreated(ctx context.Context, r *round) {
	ctx, span := s.tracer.Start(ctx, "poll.created")
	defer span.End()
	r.runs.Add(1)

	listed, err := s.enum.ListCreatedSince(ctx, s.opts.Root, lookbackSeconds())
	if err != nil {
		s.fail(ctx, r, span, err)
		return
	}
	r.consecutive = 0

	created := listed.Filter(s.opts.Filter)
	span.SetAttribute("paths", created.Len())
	s.sink.Receive(domain.EventCreated, created)
}

// fail reports a round error. Errors caused by Stop cancelling the round are
// dropped. After FailureThreshold consecutive failures the round's slots are
// filled with empty sets so the cycle can still flush.
func (s *Scheduler) fail(ctx context.Context, r *round, span ports.Span, err error) {
	if ctx.Err() != nil {
		s.logger.Debug(fmt.Sprintf("%s round cancelled", r.name))
		return
	}

	r.fails.Add(1)
	span.RecordError(err)
	s.sink.Fail(err)

	r.consecutive++
	if s.opts.FailureThreshold <= 0 || r.consecutive < s.opts.FailureThreshold {
		return
	}

	s.logger.Warn(fmt.Sprintf("%s round failed %d times in a row, reporting no changes", r.name, r.consecutive))
	r.consecutive = 0

	switch r.name {
	case RoundFull:
		if s.opts.Strategy == domain.StrategySeparate {
			s.sink.Receive(domain.EventDeleted, domain.NewPathSet())
			return
		}
		s.sink.ReceivePair(domain.NewPathSet(), domain.NewPathSet())
	case RoundModified:
		s.sink.Receive(domain.EventModified, domain.NewPathSet())
	case RoundCreated:
		s.sink.Receive(domain.EventCreated, domain.NewPathSet())
	}
}

func (s *Scheduler) logTimings(r *round, start, listedAt, filteredAt time.Time, paths int) {
	s.logger.Debug(fmt.Sprintf(
		"%s round: %d paths, list %s, filter %s, diff %s",
		r.name, paths,
		listedAt.Sub(start), filteredAt.Sub(listedAt), time.Since(filteredAt),
	))
}
