package domain

import (
	"strings"
	"time"
)

// previewArgs is how many argv entries the command preview shows before eliding the rest.
const previewArgs = 7

// Toolchain selects the container runtime and the image that carries west and the SDK.
type Toolchain struct {
	Runtime string
	Image   string
}

// BuildPlan is a fully formed container invocation for one target.
type BuildPlan struct {
	// Executable is the container runtime binary.
	Executable string
	// Args are the runtime arguments; the last one is Script.
	Args []string
	// Script is the composite shell command run inside the container.
	Script string
	// BuildDir is the slash-separated build tree relative to the workspace root.
	BuildDir string
	// HostBuildDir is BuildDir as an absolute host path.
	HostBuildDir string
}

// Argv returns the executable followed by its arguments.
func (p *BuildPlan) Argv() []string {
	argv := make([]string, 0, len(p.Args)+1)
	argv = append(argv, p.Executable)
	return append(argv, p.Args...)
}

// Preview returns a shortened rendering of the command line for the console.
func (p *BuildPlan) Preview() string {
	argv := p.Argv()
	if len(argv) > previewArgs {
		argv = argv[:previewArgs]
	}
	return strings.Join(argv, " ") + "..."
}

// Artifact describes a published firmware file.
type Artifact struct {
	Path    string
	RelPath string
	Size    int64
	Digest  string
}

// StageTiming is how long one pipeline stage took.
type StageTiming struct {
	Stage    string
	Duration time.Duration
	Failed   bool
}
