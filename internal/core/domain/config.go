package domain

import (
	"slices"
	"strconv"
	"time"

	"go.trai.ch/zerr"
)

// Strategy selects how full-tree rounds feed the aggregator.
type Strategy string

const (
	// StrategyPaired diffs both directions in the full-tree round.
	StrategyPaired Strategy = "paired"
	// StrategySeparate reports only deletions from the full-tree round and
	// runs a dedicated created round.
	StrategySeparate Strategy = "separate"
)

// Cadence selects the period of the modified round relative to the poll period.
type Cadence string

const (
	// CadenceFull runs the modified round every poll period.
	CadenceFull Cadence = "full"
	// CadenceHalf runs the modified round twice per poll period.
	CadenceHalf Cadence = "half"
)

// Backend names an enumerator implementation.
type Backend string

const (
	// BackendWalk enumerates in-process.
	BackendWalk Backend = "walk"
	// BackendFind shells out to find(1).
	BackendFind Backend = "find"
)

// LogFormat selects the log encoding.
type LogFormat string

const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// DefaultConfigFile is the configuration file looked up in the working directory.
const DefaultConfigFile = "pollwatch.yaml"

// DefaultPeriod is the poll period used when none is configured.
const DefaultPeriod = time.Second

// DefaultExclude is the prune list applied when no exclusions are configured.
var DefaultExclude = []string{".git", ".jj", "node_modules"}

// Config is the resolved watch configuration. It is built once and treated
// as immutable after construction.
type Config struct {
	Root             string
	Period           time.Duration
	Prune            bool
	Exclude          []string
	Ignore           []string
	IgnoreFile       string
	Strategy         Strategy
	ModifiedCadence  Cadence
	Backend          Backend
	FailureThreshold int
	LogFormat        LogFormat
	LogLevel         string
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Root:            ".",
		Period:          DefaultPeriod,
		Prune:           true,
		Exclude:         slices.Clone(DefaultExclude),
		Strategy:        StrategyPaired,
		ModifiedCadence: CadenceFull,
		Backend:         BackendWalk,
		LogFormat:       LogFormatPretty,
		LogLevel:        "info",
	}
}

// PruneList returns the directory names excluded at traversal time, or nil
// when pruning is disabled.
func (c Config) PruneList() []string {
	if !c.Prune {
		return nil
	}
	return slices.Clone(c.Exclude)
}

// Validate checks the values that do not depend on the filesystem.
func (c Config) Validate() error {
	if c.Period <= 0 {
		return zerr.With(ErrInvalidPeriod, "period", c.Period.String())
	}
	if err := c.Strategy.Validate(); err != nil {
		return err
	}
	if err := c.ModifiedCadence.Validate(); err != nil {
		return err
	}
	if err := c.ModifiedCadence.CheckPeriod(c.Period); err != nil {
		return err
	}
	if err := c.Backend.Validate(); err != nil {
		return err
	}
	if c.FailureThreshold < 0 {
		return zerr.With(ErrInvalidFailureThreshold, "failure_threshold", strconv.Itoa(c.FailureThreshold))
	}
	return c.LogFormat.Validate()
}

// Validate reports whether s is a known strategy.
func (s Strategy) Validate() error {
	switch s {
	case StrategyPaired, StrategySeparate:
		return nil
	}
	return zerr.With(ErrInvalidStrategy, "strategy", string(s))
}

// Validate reports whether c is a known cadence.
func (c Cadence) Validate() error {
	switch c {
	case CadenceFull, CadenceHalf:
		return nil
	}
	return zerr.With(ErrInvalidCadence, "cadence", string(c))
}

// Validate reports whether b is a known backend.
func (b Backend) Validate() error {
	switch b {
	case BackendWalk, BackendFind:
		return nil
	}
	return zerr.With(ErrInvalidBackend, "backend", string(b))
}

// Validate reports whether f is a known log format.
func (f LogFormat) Validate() error {
	switch f {
	case LogFormatPretty, LogFormatJSON:
		return nil
	}
	return zerr.With(ErrInvalidLogFormat, "log_format", string(f))
}

// CheckPeriod fails when period leaves the modified round without a positive
// interval.
func (c Cadence) CheckPeriod(period time.Duration) error {
	if interval := c.Interval(period); interval <= 0 {
		return zerr.With(ErrInvalidPeriod, "modified_period", interval.String())
	}
	return nil
}

// Interval returns the modified-round period for a poll period.
func (c Cadence) Interval(period time.Duration) time.Duration {
	if c == CadenceHalf {
		return period / 2
	}
	return period
}
