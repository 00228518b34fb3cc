package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.trai.ch/zerr"
	"go.trai.ch/zmkbuild/internal/core/domain"
)

const (
	// EnvRuntime names the variable overriding the container runtime.
	EnvRuntime = "ZMKBUILD_RUNTIME"
	// EnvImage names the variable overriding the toolchain image.
	EnvImage = "ZMKBUILD_IMAGE"
)

// ResolveToolchain merges toolchain settings. Precedence, highest first: non-empty
// fields of override, the process environment, <root>/manual_build/.env, defaults.
func (l *Loader) ResolveToolchain(root string, override domain.Toolchain) (domain.Toolchain, error) {
	fileEnv, err := l.readEnvFile(root)
	if err != nil {
		return domain.Toolchain{}, err
	}

	return domain.Toolchain{
		Runtime: firstNonEmpty(override.Runtime, os.Getenv(EnvRuntime), fileEnv[EnvRuntime], domain.DefaultRuntime),
		Image:   firstNonEmpty(override.Image, os.Getenv(EnvImage), fileEnv[EnvImage], domain.DefaultImage),
	}, nil
}

// readEnvFile parses the optional env file without touching the process environment.
func (l *Loader) readEnvFile(root string) (map[string]string, error) {
	envPath := filepath.Join(root, filepath.FromSlash(domain.EnvFilePath()))

	if _, err := os.Stat(envPath); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	env, err := godotenv.Read(envPath)
	if err != nil {
		return nil, errors.Join(domain.ErrConfigParse,
			zerr.With(zerr.Wrap(err, "error parsing "+envPath), "path", envPath))
	}

	if l.Logger != nil {
		l.Logger.Info("Loaded toolchain settings from " + domain.EnvFilePath())
	}
	return env, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
