package container

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zmkbuild/internal/core/ports"
)

// NodeID is the unique identifier for the planner Graft node.
const NodeID graft.ID = "adapter.planner"

func init() {
	graft.Register(graft.Node[ports.Planner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.Planner, error) {
			return NewPlanner(), nil
		},
	})
}
