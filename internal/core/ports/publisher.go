package ports

import "go.trai.ch/zmkbuild/internal/core/domain"

// Publisher copies a finished build's firmware into the shared output directory.
//
//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks
type Publisher interface {
	// Publish copies <root>/<buildDir>/zephyr/zmk.uf2 to its normalized name.
	// It returns domain.ErrArtifactMissing or domain.ErrArtifactCopy on failure.
	Publish(root, buildDir, shield, board string) (*domain.Artifact, error)
}
