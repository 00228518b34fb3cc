// Package shell provides the executor adapter that runs build plans as child processes.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/zerr"
	"go.trai.ch/zmkbuild/internal/core/domain"
	"go.trai.ch/zmkbuild/internal/core/ports"
	"go.trai.ch/zmkbuild/internal/ui/output"
	"go.trai.ch/zmkbuild/internal/ui/style"
)

// DefaultGracePeriod is how long an interrupted child gets to exit before it is killed.
const DefaultGracePeriod = 10 * time.Second

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
// The child shares the executor's streams so the container output reaches the console unchanged.
type Executor struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	term   *termenv.Output
	grace  time.Duration
}

// Option configures an Executor.
type Option func(*Executor)

// WithStreams overrides the streams handed to the child process.
func WithStreams(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(e *Executor) {
		e.stdin = stdin
		e.stdout = stdout
		e.stderr = stderr
	}
}

// WithGracePeriod sets how long an interrupted child may take to exit.
func WithGracePeriod(d time.Duration) Option {
	return func(e *Executor) {
		e.grace = d
	}
}

// NewExecutor creates a new Executor bound to the process console.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		grace:  DefaultGracePeriod,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.term = output.New(e.stdout)
	return e
}

// Execute prints the build banner, runs the plan and reports the outcome.
func (e *Executor) Execute(ctx context.Context, plan *domain.BuildPlan, name string) error {
	if plan == nil || plan.Executable == "" {
		return errors.Join(domain.ErrBuildFailed, zerr.New("empty build plan"))
	}

	e.printf("\n%s\n", style.Rule())
	e.printf("Building: %s\n", output.Bold(e.term, name))
	e.printf("%s\n\n", style.Rule())
	e.printf("Running: %s\n", plan.Preview())
	e.printf("\nFull command string:\n%s\n\n\n", plan.Script)

	cmd := exec.CommandContext(ctx, plan.Executable, plan.Args...) //nolint:gosec // runtime and image come from the operator
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = e.grace

	err := cmd.Run()

	// An interrupted build never counts as a success, whatever the child's exit status.
	if ctx.Err() != nil {
		e.printf("\n\nBuild interrupted by user.\n")
		cause := err
		if cause == nil {
			cause = ctx.Err()
		}
		return errors.Join(domain.ErrInterrupted, zerr.Wrap(cause, "build interrupted"))
	}

	if err == nil {
		e.banner(output.Paint(e.term, style.Check+" Build completed successfully!", style.Green))
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		e.banner(output.Paint(e.term, fmt.Sprintf("%s Build failed with error code %d", style.Cross, code), style.Red))
		return errors.Join(domain.ErrBuildFailed,
			zerr.With(zerr.Wrap(err, "build command failed"), "exit_code", code))
	}

	return errors.Join(domain.ErrBuildFailed,
		zerr.With(zerr.Wrap(err, "failed to start build command"), "executable", plan.Executable))
}

func (e *Executor) banner(msg string) {
	e.printf("\n%s\n%s\n%s\n\n", style.Rule(), msg, style.Rule())
}

func (e *Executor) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(e.stdout, format, args...)
}
