package find

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the find enumerator Graft node.
const NodeID graft.ID = "adapter.find"

func init() {
	graft.Register(graft.Node[*Finder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Finder, error) {
			return NewFinder(), nil
		},
	})
}
