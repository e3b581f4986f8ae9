package ports

import (
	"context"

	"go.trai.ch/pollwatch/internal/core/domain"
)

// Enumerator lists regular files under a root directory. Returned paths are
// relative to root and normalized. On failure an implementation returns an
// empty set together with a *domain.EnumerationError.
//
//go:generate mockgen -source=enumerator.go -destination=mocks/mock_enumerator.go -package=mocks
type Enumerator interface {
	// ListAll lists every file, never descending into directories whose
	// basename is in prune.
	ListAll(ctx context.Context, root string, prune []string) (domain.PathSet, error)

	// ListModifiedSince lists files modified within the last seconds.
	ListModifiedSince(ctx context.Context, root string, seconds int, prune []string) (domain.PathSet, error)

	// ListCreatedSince lists files created within the last seconds.
	ListCreatedSince(ctx context.Context, root string, seconds int) (domain.PathSet, error)
}
