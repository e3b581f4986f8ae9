package domain

import "unique"

// OneWayDiff returns the members of a that are not in b.
func OneWayDiff(a, b PathSet) PathSet {
	out := PathSet{m: make(map[unique.Handle[string]]struct{})}
	for h := range a.m {
		if _, ok := b.m[h]; !ok {
			out.m[h] = struct{}{}
		}
	}
	return out
}

// TwoWayDiff compares an earlier snapshot with a later one and returns the
// paths that disappeared and the paths that appeared.
func TwoWayDiff(prev, next PathSet) (deleted, created PathSet) {
	return OneWayDiff(prev, next), OneWayDiff(next, prev)
}
