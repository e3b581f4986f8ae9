// Package fs provides the in-process enumerator backend.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"time"

	"go.trai.ch/pollwatch/internal/core/domain"
	"go.trai.ch/pollwatch/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Enumerator = (*Walker)(nil)

const backendName = "walk"

// Walker enumerates regular files with filepath.WalkDir.
type Walker struct {
	now func() time.Time
}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{now: time.Now}
}

// ListAll lists every regular file under root.
func (w *Walker) ListAll(ctx context.Context, root string, prune []string) (domain.PathSet, error) {
	return w.list(ctx, "list_all", root, prune, nil)
}

// ListModifiedSince lists regular files whose modification time falls within
// the last seconds, inclusive.
func (w *Walker) ListModifiedSince(
	ctx context.Context, root string, seconds int, prune []string,
) (domain.PathSet, error) {
	threshold := w.threshold(seconds)
	return w.list(ctx, "list_modified", root, prune, func(info fs.FileInfo) bool {
		return !info.ModTime().Before(threshold)
	})
}

// ListCreatedSince lists regular files created within the last seconds. On
// platforms without a birth time the inode change time stands in.
func (w *Walker) ListCreatedSince(ctx context.Context, root string, seconds int) (domain.PathSet, error) {
	threshold := w.threshold(seconds)
	return w.list(ctx, "list_created", root, nil, func(info fs.FileInfo) bool {
		return !creationTime(info).Before(threshold)
	})
}

func (w *Walker) threshold(seconds int) time.Time {
	return w.now().Add(-time.Duration(seconds) * time.Second)
}

func (w *Walker) list(
	ctx context.Context, op, root string, prune []string, keep func(fs.FileInfo) bool,
) (domain.PathSet, error) {
	set := domain.NewPathSet()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path != root && errors.Is(err, fs.ErrNotExist) {
				// Vanished between listing its parent and visiting it.
				return nil
			}
			return zerr.With(zerr.Wrap(err, "failed to read directory entry"), "path", path)
		}

		if d.IsDir() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if path != root && slices.Contains(prune, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if keep != nil {
			info, err := d.Info()
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
			}
			if !keep(info) {
				return nil
			}
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		set.Add(rel)
		return nil
	})
	if err != nil {
		return domain.NewPathSet(), &domain.EnumerationError{Backend: backendName, Op: op, Root: root, Err: err}
	}

	return set, nil
}
