// Package artifact publishes finished firmware into the shared output directory.
package artifact

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
	"go.trai.ch/zmkbuild/internal/core/domain"
	"go.trai.ch/zmkbuild/internal/core/ports"
)

var _ ports.Publisher = (*Publisher)(nil)

// Publisher implements ports.Publisher on the local filesystem.
type Publisher struct{}

// NewPublisher creates a new Publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish copies the firmware built into buildDir to
// manual_build/artifacts/output/<shield>-<board>.uf2 under root.
func (p *Publisher) Publish(root, buildDir, shield, board string) (*domain.Artifact, error) {
	outputDir := filepath.Join(root, filepath.FromSlash(domain.OutputPath()))
	if err := os.MkdirAll(outputDir, domain.DirPerm); err != nil {
		return nil, errors.Join(domain.ErrArtifactCopy,
			zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", outputDir))
	}

	src := filepath.Join(root, filepath.FromSlash(buildDir), domain.ZephyrDirName, domain.FirmwareFileName)
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, errors.Join(domain.ErrArtifactMissing,
				zerr.With(zerr.New("source file not found"), "path", src))
		}
		return nil, errors.Join(domain.ErrArtifactCopy,
			zerr.With(zerr.Wrap(err, "failed to stat firmware"), "path", src))
	}
	if info.IsDir() {
		return nil, errors.Join(domain.ErrArtifactMissing,
			zerr.With(zerr.New("source path is a directory"), "path", src))
	}

	name := domain.FirmwareName(shield, board)
	dst := filepath.Join(outputDir, name)

	digest, size, err := copyFile(src, dst, info)
	if err != nil {
		return nil, errors.Join(domain.ErrArtifactCopy, zerr.With(err, "dest", dst))
	}

	return &domain.Artifact{
		Path:    dst,
		RelPath: path.Join(domain.OutputPath(), name),
		Size:    size,
		Digest:  fmt.Sprintf("%016x", digest),
	}, nil
}

// copyFile copies src to dst through a temporary sibling and renames it into
// place, keeping the source's permission bits and modification time.
func copyFile(src, dst string, info iofs.FileInfo) (digest uint64, size int64, err error) {
	in, err := os.Open(src) //nolint:gosec // Path is derived from the workspace root
	if err != nil {
		return 0, 0, zerr.With(zerr.Wrap(err, "failed to open firmware"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return 0, 0, zerr.Wrap(err, "failed to create temporary file")
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	hasher := xxhash.New()
	size, err = io.Copy(io.MultiWriter(tmp, hasher), in)
	if err != nil {
		_ = tmp.Close()
		return 0, 0, zerr.Wrap(err, "failed to copy firmware content")
	}
	if err = tmp.Close(); err != nil {
		return 0, 0, zerr.Wrap(err, "failed to flush firmware copy")
	}
	if err = os.Chmod(tmpName, info.Mode().Perm()); err != nil {
		return 0, 0, zerr.Wrap(err, "failed to set firmware mode")
	}
	if err = os.Chtimes(tmpName, info.ModTime(), info.ModTime()); err != nil {
		return 0, 0, zerr.Wrap(err, "failed to set firmware modification time")
	}
	if err = os.Rename(tmpName, dst); err != nil {
		return 0, 0, zerr.Wrap(err, "failed to move firmware into place")
	}

	return hasher.Sum64(), size, nil
}
