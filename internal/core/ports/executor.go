// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/zmkbuild/internal/core/domain"
)

// Executor defines the interface for running a build plan.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the plan in the foreground and blocks until it exits.
	//
	// It returns domain.ErrBuildFailed for a non-zero exit status and
	// domain.ErrInterrupted when ctx is cancelled while the build runs.
	Execute(ctx context.Context, plan *domain.BuildPlan, name string) error
}
