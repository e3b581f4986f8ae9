package domain

import (
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"go.trai.ch/zerr"
)

// PathFilter decides whether a root-relative path is reported.
type PathFilter func(path string) bool

// DefaultFilter rejects any path with a segment that starts with a dot, under
// either separator. The current and parent directory segments are allowed.
func DefaultFilter(path string) bool {
	for seg := range strings.FieldsFuncSeq(path, isSeparator) {
		if seg == "." || seg == ".." {
			continue
		}
		if strings.HasPrefix(seg, ".") {
			return false
		}
	}
	return true
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// AcceptAll reports every path.
func AcceptAll(string) bool { return true }

// And combines filters so that a path is reported only when every non-nil
// filter accepts it.
func And(filters ...PathFilter) PathFilter {
	active := make([]PathFilter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}
	switch len(active) {
	case 0:
		return AcceptAll
	case 1:
		return active[0]
	}
	return func(path string) bool {
		for _, f := range active {
			if !f(path) {
				return false
			}
		}
		return true
	}
}

// IgnorePatterns builds a filter that rejects paths matching any of the given
// gitignore-style patterns. It returns nil when there is nothing to ignore.
func IgnorePatterns(patterns ...string) PathFilter {
	if len(patterns) == 0 {
		return nil
	}
	gi := ignore.CompileIgnoreLines(patterns...)
	return func(path string) bool {
		return !gi.MatchesPath(path)
	}
}

// IgnoreFile builds a filter from a gitignore-style file on disk.
func IgnoreFile(path string) (PathFilter, error) {
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrIgnoreFileFailed.Error()), "path", path)
	}
	return func(p string) bool {
		return !gi.MatchesPath(p)
	}, nil
}
