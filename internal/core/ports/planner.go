package ports

import "go.trai.ch/zmkbuild/internal/core/domain"

// Planner turns a build target into a container invocation.
//
//go:generate mockgen -source=planner.go -destination=mocks/mock_planner.go -package=mocks
type Planner interface {
	// Plan builds the command for target against the absolute workspace root.
	// It performs no I/O.
	Plan(target domain.BuildTarget, root string, toolchain domain.Toolchain) (*domain.BuildPlan, error)
}
