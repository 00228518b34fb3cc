package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigNotFound is returned when build.yaml cannot be found in the workspace.
	ErrConfigNotFound = zerr.New("build configuration not found")

	// ErrConfigParse is returned when build.yaml or the toolchain env file is not well-formed.
	ErrConfigParse = zerr.New("failed to parse build configuration")

	// ErrNoBuildTargets is returned when the include list is empty or absent.
	ErrNoBuildTargets = zerr.New("no build configurations found")

	// ErrInvalidSelection is returned when a selection does not name a listed target.
	ErrInvalidSelection = zerr.New("invalid selection")

	// ErrSelectionAborted is returned when the operator quits at the prompt.
	ErrSelectionAborted = zerr.New("selection aborted")

	// ErrInvalidTarget is returned when a build target is missing a required field
	// or contains characters that cannot be mapped to a build directory.
	ErrInvalidTarget = zerr.New("invalid build target")

	// ErrBuildFailed is returned when the toolchain exits with a non-zero status or cannot be started.
	ErrBuildFailed = zerr.New("build failed")

	// ErrInterrupted is returned when the operator interrupts the program.
	ErrInterrupted = zerr.New("interrupted by user")

	// ErrArtifactMissing is returned when the expected firmware file was not produced.
	ErrArtifactMissing = zerr.New("firmware artifact not found")

	// ErrArtifactCopy is returned when the firmware file cannot be copied to the output directory.
	ErrArtifactCopy = zerr.New("failed to copy firmware artifact")
)
