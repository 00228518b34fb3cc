package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zmkbuild/internal/adapters/telemetry"
	"go.trai.ch/zmkbuild/internal/app"
	"go.trai.ch/zmkbuild/internal/core/domain"
	"go.trai.ch/zmkbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader    *mocks.MockConfigLoader
	presenter *mocks.MockPresenter
	logger    *mocks.MockLogger
	provider  ComponentProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:    mocks.NewMockConfigLoader(ctrl),
		presenter: mocks.NewMockPresenter(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}

	application := app.New(
		f.loader,
		f.presenter,
		mocks.NewMockPlanner(ctrl),
		mocks.NewMockExecutor(ctrl),
		mocks.NewMockPublisher(ctrl),
		telemetry.NewOTelTracer(),
		f.logger,
	).WithOutput(new(bytes.Buffer))

	f.provider = func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: f.logger,
		}, func() {}, nil
	}
	return f
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	f := newFixture(t)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, f.provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_Quit verifies that quitting at the prompt exits 0.
func TestRun_Quit(t *testing.T) {
	f := newFixture(t)
	targets := domain.TargetList{{Board: "nice_nano_v2", Shield: "corne_left"}}

	f.loader.EXPECT().Load("/ws").Return(targets, nil)
	f.loader.EXPECT().ResolveToolchain("/ws", domain.Toolchain{}).Return(domain.Toolchain{Runtime: "docker", Image: "img"}, nil)
	f.presenter.EXPECT().Show(targets)
	f.presenter.EXPECT().Select(gomock.Any(), 1).Return(0, domain.ErrSelectionAborted)

	exitCode := run(context.Background(), []string{"-w", "/ws"}, new(bytes.Buffer), f.provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_ExecutionError verifies that run returns 1 and logs when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load("/ws").Return(nil, domain.ErrConfigNotFound)
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrConfigNotFound)
	})

	exitCode := run(context.Background(), []string{"build", "-w", "/ws"}, new(bytes.Buffer), f.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_AppOptions verifies that options are applied to the App.
func TestRun_AppOptions(t *testing.T) {
	f := newFixture(t)
	applied := false

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), f.provider, func(*app.App) {
		applied = true
	})
	assert.Equal(t, 0, exitCode)
	assert.True(t, applied)
}

// TestInterruptContext_ReleasesAfterFirstSignal verifies that the first interrupt
// cancels the context and hands later interrupts back to the default handling.
func TestInterruptContext_ReleasesAfterFirstSignal(t *testing.T) {
	// Keep the process alive if the signal arrives after the handler is gone.
	guard := make(chan os.Signal, 2)
	signal.Notify(guard, os.Interrupt)
	defer signal.Stop(guard)

	ctx, cancel, release := interruptContext(context.Background())
	defer cancel()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled by SIGINT")
	}

	// AfterFunc already ran stop, so there is nothing left to release.
	assert.Eventually(t, func() bool { return !release() }, time.Second, 10*time.Millisecond)
}

// TestInterruptContext_ParentCancel verifies that cancelling the parent also releases the handler.
func TestInterruptContext_ParentCancel(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, cancel, release := interruptContext(parent)
	defer cancel()

	cancelParent()
	<-ctx.Done()
	assert.Eventually(t, func() bool { return !release() }, time.Second, 10*time.Millisecond)
}
