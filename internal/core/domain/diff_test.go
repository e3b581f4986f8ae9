package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pollwatch/internal/core/domain"
)

func TestOneWayDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want []string
	}{
		{name: "disjoint", a: []string{"a", "b"}, b: []string{"c"}, want: []string{"a", "b"}},
		{name: "overlap", a: []string{"a", "b", "c"}, b: []string{"b"}, want: []string{"a", "c"}},
		{name: "identical", a: []string{"a", "b"}, b: []string{"a", "b"}, want: []string{}},
		{name: "empty left", a: nil, b: []string{"a"}, want: []string{}},
		{name: "empty right", a: []string{"a"}, b: nil, want: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.OneWayDiff(domain.NewPathSet(tt.a...), domain.NewPathSet(tt.b...))
			assert.Equal(t, tt.want, got.Sorted())
		})
	}
}

func TestTwoWayDiff(t *testing.T) {
	prev := domain.NewPathSet("x", "y")
	next := domain.NewPathSet("x", "z")

	deleted, created := domain.TwoWayDiff(prev, next)

	assert.Equal(t, []string{"y"}, deleted.Sorted())
	assert.Equal(t, []string{"z"}, created.Sorted())
	assert.True(t, domain.OneWayDiff(prev, next).Equal(deleted))
	assert.True(t, domain.OneWayDiff(next, prev).Equal(created))
}

func TestTwoWayDiff_Unchanged(t *testing.T) {
	tree := domain.NewPathSet("a", "b/c")

	deleted, created := domain.TwoWayDiff(tree, tree.Clone())

	assert.True(t, deleted.IsEmpty())
	assert.True(t, created.IsEmpty())
}
