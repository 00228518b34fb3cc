// Package config provides the build matrix and toolchain loader for zmkbuild.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"go.trai.ch/zmkbuild/internal/core/domain"
	"go.trai.ch/zmkbuild/internal/core/ports"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using build.yaml at the workspace root.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads build.yaml from root and returns its targets in file order.
func (l *Loader) Load(root string) (domain.TargetList, error) {
	configPath := filepath.Join(root, domain.ConfigFileName)

	data, err := os.ReadFile(configPath) //nolint:gosec // path is the workspace config file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Join(domain.ErrConfigNotFound,
				zerr.With(zerr.New(configPath+" not found"), "path", configPath))
		}
		return nil, errors.Join(domain.ErrConfigNotFound,
			zerr.With(zerr.Wrap(err, "failed to read config file"), "path", configPath))
	}

	var file BuildFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(domain.ErrConfigParse,
			zerr.With(zerr.Wrap(err, "error parsing "+configPath), "path", configPath))
	}

	if len(file.Include) == 0 {
		return nil, errors.Join(domain.ErrNoBuildTargets,
			zerr.With(zerr.New("include list is empty or missing"), "path", configPath))
	}

	targets := make(domain.TargetList, 0, len(file.Include))
	for _, dto := range file.Include {
		targets = append(targets, domain.BuildTarget{
			Board:     dto.Board,
			Shield:    dto.Shield,
			Snippet:   dto.Snippet,
			CMakeArgs: dto.CMakeArgs,
		})
	}

	return targets, nil
}

// DiscoverRoot walks up from cwd to the first directory containing build.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	start, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	for dir := start; ; {
		if info, err := os.Stat(filepath.Join(dir, domain.ConfigFileName)); err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.Join(domain.ErrConfigNotFound,
		zerr.With(zerr.New(domain.ConfigFileName+" not found in any parent directory"), "cwd", start))
}
