// Package app implements the application layer for zmkbuild.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/zerr"
	"go.trai.ch/zmkbuild/internal/core/domain"
	"go.trai.ch/zmkbuild/internal/core/ports"
)

// Stage names used for spans and timings.
const (
	StageLoad    = "load"
	StageSelect  = "select"
	StagePlan    = "plan"
	StageBuild   = "build"
	StagePublish = "publish"
)

const header = `╔════════════════════════════════════════════╗
║   ZMK Local Build Script (Docker)          ║
╚════════════════════════════════════════════╝
`

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	presenter    ports.Presenter
	planner      ports.Planner
	executor     ports.Executor
	publisher    ports.Publisher
	tracer       ports.Tracer
	logger       ports.Logger
	out          io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	presenter ports.Presenter,
	planner ports.Planner,
	executor ports.Executor,
	publisher ports.Publisher,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		presenter:    presenter,
		planner:      planner,
		executor:     executor,
		publisher:    publisher,
		tracer:       tracer,
		logger:       log,
		out:          os.Stdout,
	}
}

// WithOutput sets where the header and progress lines are written.
// This is primarily used for testing.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WorkspaceOptions locates the workspace root.
type WorkspaceOptions struct {
	// Workspace is an explicit workspace root. When empty the root is
	// discovered by walking up from Dir.
	Workspace string
	// Dir is the directory discovery starts from.
	Dir string
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	WorkspaceOptions
	// Toolchain holds runtime and image overrides; empty fields are resolved by the loader.
	Toolchain domain.Toolchain
	// Select picks a target by 1-based index or shield name instead of prompting.
	Select string
	// Timings prints how long each stage took.
	Timings bool
}

// Build runs the pipeline: load the matrix, select a target, plan the
// container command, run it and publish the firmware.
//
// Quitting at the prompt returns nil. A missing or uncopyable artifact is
// reported as a warning and does not fail the build.
//
//nolint:cyclop // orchestration function
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	a.printf("%s", header)

	if opts.Timings {
		defer a.printTimings()
	}

	root, err := a.resolveRoot(opts.WorkspaceOptions)
	if err != nil {
		return err
	}

	targets, toolchain, err := a.load(ctx, root, opts.Toolchain)
	if err != nil {
		return err
	}

	index, err := a.selectTarget(ctx, targets, opts.Select)
	if errors.Is(err, domain.ErrSelectionAborted) {
		a.printf("Exiting...\n")
		return nil
	}
	if err != nil {
		return err
	}
	target := targets[index]

	plan, err := a.plan(ctx, target, root, toolchain)
	if err != nil {
		return err
	}

	if err := a.build(ctx, plan, target); err != nil {
		return err
	}

	a.publish(ctx, root, plan, target)
	return nil
}

// List prints the build matrix without prompting.
func (a *App) List(ctx context.Context, opts WorkspaceOptions) error {
	root, err := a.resolveRoot(opts)
	if err != nil {
		return err
	}

	_, span := a.tracer.Start(ctx, StageLoad)
	defer span.End()

	targets, err := a.configLoader.Load(root)
	if err != nil {
		span.RecordError(err)
		return err
	}

	a.presenter.Show(targets)
	return nil
}

func (a *App) resolveRoot(opts WorkspaceOptions) (string, error) {
	if opts.Workspace != "" {
		root, err := filepath.Abs(opts.Workspace)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to resolve workspace"), "workspace", opts.Workspace)
		}
		return root, nil
	}

	return a.configLoader.DiscoverRoot(opts.Dir)
}

func (a *App) load(
	ctx context.Context,
	root string,
	override domain.Toolchain,
) (domain.TargetList, domain.Toolchain, error) {
	_, span := a.tracer.Start(ctx, StageLoad)
	defer span.End()
	span.SetAttribute("root", root)

	targets, err := a.configLoader.Load(root)
	if err != nil {
		span.RecordError(err)
		return nil, domain.Toolchain{}, err
	}
	span.SetAttribute("targets", len(targets))

	toolchain, err := a.configLoader.ResolveToolchain(root, override)
	if err != nil {
		span.RecordError(err)
		return nil, domain.Toolchain{}, err
	}
	span.SetAttribute("image", toolchain.Image)

	return targets, toolchain, nil
}

func (a *App) selectTarget(ctx context.Context, targets domain.TargetList, choice string) (int, error) {
	ctx, span := a.tracer.Start(ctx, StageSelect)
	defer span.End()

	var (
		index int
		err   error
	)
	if choice != "" {
		index, err = a.presenter.Pick(targets, choice)
	} else {
		a.presenter.Show(targets)
		index, err = a.presenter.Select(ctx, len(targets))
	}

	if err != nil {
		if !errors.Is(err, domain.ErrSelectionAborted) {
			span.RecordError(err)
		}
		return 0, err
	}

	span.SetAttribute("index", index)
	return index, nil
}

func (a *App) plan(
	ctx context.Context,
	target domain.BuildTarget,
	root string,
	toolchain domain.Toolchain,
) (*domain.BuildPlan, error) {
	_, span := a.tracer.Start(ctx, StagePlan)
	defer span.End()

	plan, err := a.planner.Plan(target, root, toolchain)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("build_dir", plan.BuildDir)
	return plan, nil
}

func (a *App) build(ctx context.Context, plan *domain.BuildPlan, target domain.BuildTarget) error {
	ctx, span := a.tracer.Start(ctx, StageBuild)
	defer span.End()
	span.SetAttribute("shield", target.Shield)
	span.SetAttribute("board", target.Board)

	if err := a.executor.Execute(ctx, plan, target.Shield); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (a *App) publish(ctx context.Context, root string, plan *domain.BuildPlan, target domain.BuildTarget) {
	_, span := a.tracer.Start(ctx, StagePublish)
	defer span.End()

	original := filepath.Join(plan.HostBuildDir, domain.ZephyrDirName, domain.FirmwareFileName)
	a.printf("\nOriginal output: %s\n", original)

	artifact, err := a.publisher.Publish(root, plan.BuildDir, target.Shield, target.Board)
	if err != nil {
		span.RecordError(err)
		a.logger.Warn(warningFor(err))
		return
	}

	span.SetAttribute("digest", artifact.Digest)
	span.SetAttribute("size", artifact.Size)

	a.printf("✓ Firmware copied to: %s\n", artifact.RelPath)
	a.printf("\nTo flash: Copy the firmware to your board's USB drive\n")
	a.printf("  File: %s\n", artifact.RelPath)
}

func (a *App) printTimings() {
	timings := a.tracer.Timings()
	if len(timings) == 0 {
		return
	}

	var b strings.Builder
	b.WriteString("Stage timings:")
	for _, t := range timings {
		status := ""
		if t.Failed {
			status = " (failed)"
		}
		fmt.Fprintf(&b, "\n  %-8s %s%s", t.Stage, t.Duration.Round(time.Millisecond), status)
	}
	a.logger.Info(b.String())
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

// warningFor renders a publisher error as a single warning line.
func warningFor(err error) string {
	var path string
	var zErr *zerr.Error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if errors.As(e, &zErr) {
				if p, ok := zErr.Metadata()["path"].(string); ok {
					path = p
				}
			}
		}
	}

	switch {
	case errors.Is(err, domain.ErrArtifactMissing) && path != "":
		return "Source file not found: " + path
	case errors.Is(err, domain.ErrArtifactMissing):
		return "Source file not found"
	default:
		return "Error copying firmware: " + flatten(err)
	}
}

func flatten(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", ": ")
}
