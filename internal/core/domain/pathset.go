package domain

import (
	"encoding/binary"
	"iter"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"unique"

	"github.com/cespare/xxhash/v2"
)

// PathSet is an unordered collection of distinct root-relative file paths.
// Paths are interned so sets that share most of their members stay cheap
// to hold across poll cycles. The zero value is an empty, usable set.
type PathSet struct {
	m map[unique.Handle[string]]struct{}
}

// NewPathSet builds a set from paths, normalizing each and dropping
// empties and duplicates.
func NewPathSet(paths ...string) PathSet {
	s := PathSet{m: make(map[unique.Handle[string]]struct{}, len(paths))}
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// NormalizePath returns the canonical form of a root-relative path: cleaned,
// slash-separated and without a leading "./". It returns "" for paths that
// name the root itself. Whitespace is part of a file name and is kept.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}
	p = filepath.ToSlash(filepath.Clean(p))
	p = strings.TrimPrefix(p, "./")
	if p == "." {
		return ""
	}
	return p
}

// Add inserts p after normalization. Empty paths are ignored.
func (s *PathSet) Add(p string) {
	p = NormalizePath(p)
	if p == "" {
		return
	}
	if s.m == nil {
		s.m = make(map[unique.Handle[string]]struct{})
	}
	s.m[unique.Make(p)] = struct{}{}
}

// Has reports whether p is a member.
func (s PathSet) Has(p string) bool {
	_, ok := s.m[unique.Make(NormalizePath(p))]
	return ok
}

// Len returns the number of members.
func (s PathSet) Len() int {
	return len(s.m)
}

// IsEmpty reports whether the set has no members.
func (s PathSet) IsEmpty() bool {
	return len(s.m) == 0
}

// All yields the members in no particular order.
func (s PathSet) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for h := range s.m {
			if !yield(h.Value()) {
				return
			}
		}
	}
}

// Sorted returns the members in lexical order. The result is never nil.
func (s PathSet) Sorted() []string {
	out := make([]string, 0, len(s.m))
	for h := range s.m {
		out = append(out, h.Value())
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent copy.
func (s PathSet) Clone() PathSet {
	if s.m == nil {
		return PathSet{m: map[unique.Handle[string]]struct{}{}}
	}
	return PathSet{m: maps.Clone(s.m)}
}

// Equal reports whether both sets hold the same members.
func (s PathSet) Equal(other PathSet) bool {
	if len(s.m) != len(other.m) {
		return false
	}
	for h := range s.m {
		if _, ok := other.m[h]; !ok {
			return false
		}
	}
	return true
}

// Filter returns the members accepted by keep. A nil keep accepts everything.
func (s PathSet) Filter(keep PathFilter) PathSet {
	if keep == nil {
		return s.Clone()
	}
	out := PathSet{m: make(map[unique.Handle[string]]struct{}, len(s.m))}
	for h := range s.m {
		if keep(h.Value()) {
			out.m[h] = struct{}{}
		}
	}
	return out
}

// Fingerprint returns an order-independent digest of the membership. Two sets
// with the same members always share a fingerprint.
func (s PathSet) Fingerprint() uint64 {
	var sum uint64
	for h := range s.m {
		sum += xxhash.Sum64String(h.Value())
	}

	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], sum)
	binary.LittleEndian.PutUint64(buf[8:], uint64(len(s.m)))
	return xxhash.Sum64(buf[:])
}
