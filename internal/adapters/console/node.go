package console

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the console renderer Graft node.
const NodeID graft.ID = "adapter.console"

func init() {
	graft.Register(graft.Node[*Renderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Renderer, error) {
			return New(os.Stdout), nil
		},
	})
}
