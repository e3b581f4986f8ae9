package ports

import (
	"github.com/fsnotify/fsnotify"
	"go.trai.ch/pollwatch/internal/core/domain"
)

// Renderer writes watcher output for a human or a machine consumer.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Render writes one event.
	Render(event domain.Event) error

	// RenderNotify writes one event in fsnotify form.
	RenderNotify(event fsnotify.Event) error

	// RenderSnapshot writes the result of a single enumeration.
	RenderSnapshot(root string, paths domain.PathSet) error
}
