package domain

import (
	"go.trai.ch/zerr"
)

var (
	// ErrEnumerationFailed is matched by every error an enumerator returns.
	ErrEnumerationFailed = zerr.New("enumeration failed")

	// ErrOutputTooLarge is returned when an external enumerator produces more output than allowed.
	ErrOutputTooLarge = zerr.New("enumerator output exceeds limit")

	// ErrRootNotFound is returned when the watched root does not exist.
	ErrRootNotFound = zerr.New("watch root does not exist")

	// ErrRootNotDirectory is returned when the watched root is not a directory.
	ErrRootNotDirectory = zerr.New("watch root is not a directory")

	// ErrInvalidPeriod is returned when the poll period is not positive.
	ErrInvalidPeriod = zerr.New("poll period must be positive")

	// ErrInvalidStrategy is returned for an unknown full-tree strategy.
	ErrInvalidStrategy = zerr.New("invalid strategy")

	// ErrInvalidCadence is returned for an unknown modified-round cadence.
	ErrInvalidCadence = zerr.New("invalid modified cadence")

	// ErrInvalidBackend is returned for an unknown enumerator backend.
	ErrInvalidBackend = zerr.New("invalid enumerator backend")

	// ErrInvalidFailureThreshold is returned when the failure threshold is negative.
	ErrInvalidFailureThreshold = zerr.New("failure threshold must not be negative")

	// ErrNilEnumerator is returned when a watcher is built without an enumerator.
	ErrNilEnumerator = zerr.New("enumerator is required")

	// ErrWatcherStopped is returned when starting a watcher that was already stopped.
	ErrWatcherStopped = zerr.New("watcher has been stopped")

	// ErrInvalidLogFormat is returned for an unknown log format.
	ErrInvalidLogFormat = zerr.New("invalid log format")

	// ErrConfigNotFound is returned when an explicitly requested config file is missing.
	ErrConfigNotFound = zerr.New("config file not found")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrIgnoreFileFailed is returned when an ignore file cannot be loaded.
	ErrIgnoreFileFailed = zerr.New("failed to load ignore file")
)

// EnumerationError reports a failed listing. It matches ErrEnumerationFailed
// under errors.Is and unwraps to the underlying cause.
type EnumerationError struct {
	Backend string
	Op      string
	Root    string
	Err     error
}

// Error implements the error interface.
func (e *EnumerationError) Error() string {
	msg := e.Message()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Message returns the error text without its cause.
func (e *EnumerationError) Message() string {
	return "enumeration failed: " + e.Backend + " " + e.Op + " " + e.Root
}

// Unwrap returns the underlying cause.
func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrEnumerationFailed.
func (e *EnumerationError) Is(target error) bool {
	return target == ErrEnumerationFailed
}
