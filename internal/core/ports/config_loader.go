package ports

import "go.trai.ch/zmkbuild/internal/core/domain"

// ConfigLoader defines the interface for loading the build matrix and toolchain settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads build.yaml from the workspace root and returns its targets in file order.
	Load(root string) (domain.TargetList, error)

	// DiscoverRoot walks up from cwd to the directory containing build.yaml.
	DiscoverRoot(cwd string) (string, error)

	// ResolveToolchain merges override with the environment, the workspace env file and defaults.
	ResolveToolchain(root string, override domain.Toolchain) (domain.Toolchain, error)
}
