package menu

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/zmkbuild/internal/adapters/detector"
	"go.trai.ch/zmkbuild/internal/core/ports"
)

// NodeID is the unique identifier for the presenter Graft node.
const NodeID graft.ID = "adapter.presenter"

func init() {
	graft.Register(graft.Node[ports.Presenter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.Presenter, error) {
			echo := detector.DetectEnvironment() == detector.ModeLinear
			return NewPresenter(os.Stdin, os.Stdout, echo), nil
		},
	})
}
