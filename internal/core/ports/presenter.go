package ports

import (
	"context"

	"go.trai.ch/zmkbuild/internal/core/domain"
)

// Presenter renders the build matrix and collects the operator's choice.
//
//go:generate mockgen -source=presenter.go -destination=mocks/mock_presenter.go -package=mocks
type Presenter interface {
	// Show prints the numbered menu of targets.
	Show(targets domain.TargetList)

	// Select prompts until the operator picks an entry in [1, n] or quits.
	// It returns the zero-based index of the chosen entry.
	Select(ctx context.Context, n int) (int, error)

	// Pick resolves a non-interactive choice: a 1-based index or an exact shield name.
	Pick(targets domain.TargetList, choice string) (int, error)
}
