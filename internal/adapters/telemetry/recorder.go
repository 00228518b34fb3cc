package telemetry

import (
	"context"
	"slices"
	"sync"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/zmkbuild/internal/core/domain"
)

var _ sdktrace.SpanProcessor = (*TimingRecorder)(nil)

// TimingRecorder implements sdktrace.SpanProcessor by turning ended spans into stage timings.
type TimingRecorder struct {
	mu      sync.Mutex
	timings []domain.StageTiming
}

// NewTimingRecorder returns a new TimingRecorder.
func NewTimingRecorder() *TimingRecorder {
	return &TimingRecorder{}
}

// OnStart is called when a span starts.
func (r *TimingRecorder) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (r *TimingRecorder) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.timings = append(r.timings, domain.StageTiming{
		Stage:    s.Name(),
		Duration: s.EndTime().Sub(s.StartTime()),
		Failed:   s.Status().Code == codes.Error,
	})
}

// Timings returns a copy of the recorded timings in completion order.
func (r *TimingRecorder) Timings() []domain.StageTiming {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.timings)
}

// ForceFlush does nothing.
func (r *TimingRecorder) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (r *TimingRecorder) Shutdown(_ context.Context) error {
	return nil
}
