package domain

import "path"

const (
	// ConfigFileName is the name of the build matrix file at the workspace root.
	ConfigFileName = "build.yaml"

	// ManualBuildDirName is the directory holding everything this tool writes.
	ManualBuildDirName = "manual_build"

	// ArtifactsDirName is the directory under ManualBuildDirName with per-target build trees.
	ArtifactsDirName = "artifacts"

	// OutputDirName is the directory under the artifacts directory with published firmware.
	OutputDirName = "output"

	// EnvFileName is the optional dotenv file with toolchain overrides.
	EnvFileName = ".env"

	// ZephyrDirName is the toolchain subdirectory of a build tree holding the firmware.
	ZephyrDirName = "zephyr"

	// FirmwareFileName is the file the toolchain produces inside ZephyrDirName.
	FirmwareFileName = "zmk.uf2"

	// FirmwareExt is the extension of published firmware files.
	FirmwareExt = ".uf2"

	// ContainerWorkspace is where the workspace is mounted inside the container.
	ContainerWorkspace = "/workspace"

	// ContainerConfigDir is the workspace config directory as seen from the container.
	ContainerConfigDir = ContainerWorkspace + "/config"

	// WestMarkerDir marks an initialized west workspace.
	WestMarkerDir = ".west"

	// DefaultRuntime is the container runtime used when nothing else is configured.
	DefaultRuntime = "docker"

	// DefaultImage is the ZMK toolchain image used when nothing else is configured.
	DefaultImage = "zmkfirmware/zmk-build-arm:stable"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750
)

// ArtifactsPath returns the slash-separated, workspace-relative artifacts directory.
func ArtifactsPath() string {
	return path.Join(ManualBuildDirName, ArtifactsDirName)
}

// OutputPath returns the slash-separated, workspace-relative directory for published firmware.
func OutputPath() string {
	return path.Join(ArtifactsPath(), OutputDirName)
}

// EnvFilePath returns the slash-separated, workspace-relative path of the toolchain env file.
func EnvFilePath() string {
	return path.Join(ManualBuildDirName, EnvFileName)
}
