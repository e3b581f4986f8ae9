// Package find provides an enumerator backend that shells out to find(1).
package find

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"go.trai.ch/pollwatch/internal/core/domain"
	"go.trai.ch/pollwatch/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Enumerator = (*Finder)(nil)

const (
	backendName = "find"

	// DefaultMaxOutput caps the bytes read from one find invocation.
	DefaultMaxOutput = 4000 * 1024

	stderrLimit = 4 * 1024
)

// Finder implements ports.Enumerator by running find with the root as its
// working directory.
type Finder struct {
	binary    string
	maxOutput int
}

// Option configures a Finder.
type Option func(*Finder)

// WithBinary sets the find executable. It is resolved through PATH when not absolute.
func WithBinary(path string) Option {
	return func(f *Finder) {
		f.binary = path
	}
}

// WithMaxOutput sets the output cap in bytes.
func WithMaxOutput(n int) Option {
	return func(f *Finder) {
		f.maxOutput = n
	}
}

// NewFinder creates a new Finder.
func NewFinder(opts ...Option) *Finder {
	f := &Finder{
		binary:    "find",
		maxOutput: DefaultMaxOutput,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ListAll runs `find ./ <prune> -type f`.
func (f *Finder) ListAll(ctx context.Context, root string, prune []string) (domain.PathSet, error) {
	return f.run(ctx, "list_all", root, listArgs(prune))
}

// ListModifiedSince runs `find ./ <prune> -type f -newermt "<seconds+1> seconds ago"`.
// The extra second makes the threshold inclusive at find's granularity.
func (f *Finder) ListModifiedSince(
	ctx context.Context, root string, seconds int, prune []string,
) (domain.PathSet, error) {
	args := append(listArgs(prune), "-newermt", secondsAgo(seconds))
	return f.run(ctx, "list_modified", root, args)
}

// ListCreatedSince runs `find ./ -type f -newerct "<seconds+1> seconds ago"`.
func (f *Finder) ListCreatedSince(ctx context.Context, root string, seconds int) (domain.PathSet, error) {
	args := append(listArgs(nil), "-newerct", secondsAgo(seconds))
	return f.run(ctx, "list_created", root, args)
}

func listArgs(prune []string) []string {
	args := make([]string, 0, 1+len(prune)*6+2)
	args = append(args, "./")
	for _, dir := range prune {
		args = append(args, "-not", "(", "-name", dir, "-prune", ")")
	}
	return append(args, "-type", "f")
}

func secondsAgo(seconds int) string {
	return strconv.Itoa(seconds+1) + " seconds ago"
}

func (f *Finder) run(ctx context.Context, op, root string, args []string) (domain.PathSet, error) {
	cmd := exec.CommandContext(ctx, f.binary, args...) //nolint:gosec // arguments are built from config values
	cmd.Dir = root

	stdout := &limitWriter{limit: f.maxOutput}
	stderr := &limitWriter{limit: stderrLimit, truncate: true}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return domain.NewPathSet(), &domain.EnumerationError{
			Backend: backendName,
			Op:      op,
			Root:    root,
			Err:     describe(err, stdout.overflowed, stderr.String()),
		}
	}

	return parse(stdout.Bytes()), nil
}

func describe(err error, overflowed bool, stderr string) error {
	// A closed pipe usually kills find before Wait sees the copy error.
	if overflowed || errors.Is(err, errOverflow) {
		return domain.ErrOutputTooLarge
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		wrapped := zerr.With(zerr.Wrap(err, "find exited with error"), "exit_code", strconv.Itoa(exitErr.ExitCode()))
		if msg := strings.TrimSpace(stderr); msg != "" {
			wrapped = zerr.With(wrapped, "stderr", msg)
		}
		return wrapped
	}

	return zerr.Wrap(err, "failed to run find")
}

// parse splits find output into normalized paths. Only zero-length lines are
// dropped; a line of spaces names a real file.
func parse(out []byte) domain.PathSet {
	set := domain.NewPathSet()
	for line := range bytes.SplitSeq(out, []byte("\n")) {
		set.Add(string(line))
	}
	return set
}

var errOverflow = errors.New("output limit exceeded")

// limitWriter buffers up to limit bytes. Past the limit it either fails the
// write, which stops the copy and closes find's stdout, or silently drops
// the excess when truncate is set.
type limitWriter struct {
	buf        bytes.Buffer
	limit      int
	truncate   bool
	overflowed bool
}

func (w *limitWriter) Write(p []byte) (int, error) {
	room := w.limit - w.buf.Len()
	if len(p) <= room {
		return w.buf.Write(p)
	}
	w.overflowed = true
	if !w.truncate {
		return 0, errOverflow
	}
	if room > 0 {
		w.buf.Write(p[:room])
	}
	return len(p), nil
}

func (w *limitWriter) Bytes() []byte  { return w.buf.Bytes() }
func (w *limitWriter) String() string { return w.buf.String() }
