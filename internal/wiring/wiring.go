// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/zmkbuild/internal/adapters/artifact"
	_ "go.trai.ch/zmkbuild/internal/adapters/config"
	_ "go.trai.ch/zmkbuild/internal/adapters/container"
	_ "go.trai.ch/zmkbuild/internal/adapters/logger"
	_ "go.trai.ch/zmkbuild/internal/adapters/menu"
	_ "go.trai.ch/zmkbuild/internal/adapters/shell"
	_ "go.trai.ch/zmkbuild/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/zmkbuild/internal/app"
)
