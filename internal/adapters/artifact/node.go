package artifact

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zmkbuild/internal/core/ports"
)

// NodeID is the unique identifier for the publisher Graft node.
const NodeID graft.ID = "adapter.publisher"

func init() {
	graft.Register(graft.Node[ports.Publisher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.Publisher, error) {
			return NewPublisher(), nil
		},
	})
}
