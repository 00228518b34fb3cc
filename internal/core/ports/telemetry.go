package ports

import (
	"context"

	"go.trai.ch/zmkbuild/internal/core/domain"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans around pipeline stages.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string) (context.Context, Span)
	// Timings returns the stages whose spans have ended, in completion order.
	Timings() []domain.StageTiming
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}
