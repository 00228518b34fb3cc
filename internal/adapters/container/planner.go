// Package container builds the container invocation that runs west for one target.
package container

import (
	"errors"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
	"go.trai.ch/zmkbuild/internal/core/domain"
	"go.trai.ch/zmkbuild/internal/core/ports"
)

var _ ports.Planner = (*Planner)(nil)

// Planner implements ports.Planner for docker-compatible runtimes.
type Planner struct{}

// NewPlanner creates a new Planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan builds the container command for target. It is a pure function of its inputs.
func (p *Planner) Plan(target domain.BuildTarget, root string, toolchain domain.Toolchain) (*domain.BuildPlan, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if !filepath.IsAbs(root) {
		return nil, errors.Join(domain.ErrInvalidTarget,
			zerr.With(zerr.New("workspace root must be absolute"), "root", root))
	}
	if toolchain.Runtime == "" || toolchain.Image == "" {
		return nil, zerr.With(zerr.New("toolchain runtime and image are required"), "image", toolchain.Image)
	}

	buildDir := path.Join(domain.ArtifactsPath(), target.ShieldDirName())
	script := Script(target, buildDir)

	return &domain.BuildPlan{
		Executable: toolchain.Runtime,
		Args: []string{
			"run", "--rm",
			"-v", root + ":" + domain.ContainerWorkspace,
			"-w", domain.ContainerWorkspace,
			toolchain.Image,
			"sh", "-c", script,
		},
		Script:       script,
		BuildDir:     buildDir,
		HostBuildDir: filepath.Join(root, filepath.FromSlash(buildDir)),
	}, nil
}

// Script returns the composite shell command: initialize the west workspace if
// needed, update modules, export the SDK, then build. Steps are joined with &&.
func Script(target domain.BuildTarget, buildDir string) string {
	steps := []string{
		"[ -d " + domain.WestMarkerDir + " ] || west init -l config/",
		"west update",
		"west zephyr-export",
		buildCommand(target, buildDir),
	}
	return strings.Join(steps, " && ")
}

func buildCommand(target domain.BuildTarget, buildDir string) string {
	parts := []string{
		"west build -s zmk/app",
		`-d "` + buildDir + `"`,
		"-b " + target.Board,
	}

	// Snippets are a west flag and must come before the CMake separator.
	if target.Snippet != "" {
		parts = append(parts, `-S "`+target.Snippet+`"`)
	}

	parts = append(parts,
		"--",
		"-DZMK_CONFIG="+domain.ContainerConfigDir,
		`-DSHIELD="`+target.Shield+`"`,
	)

	if target.CMakeArgs != "" {
		parts = append(parts, target.CMakeArgs)
	}

	return strings.Join(parts, " ")
}
