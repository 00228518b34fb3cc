// Package commands implements the CLI commands for zmkbuild.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
	"go.trai.ch/zmkbuild/internal/app"
	"go.trai.ch/zmkbuild/internal/build"
	"go.trai.ch/zmkbuild/internal/core/domain"
)

// CLI represents the command line interface for zmkbuild.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	getwd   func() (string, error)
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) error
	List(ctx context.Context, opts app.WorkspaceOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{
		app:   a,
		getwd: os.Getwd,
	}

	rootCmd := &cobra.Command{
		Use:   "zmkbuild",
		Short: "Build ZMK firmware locally in a container",
		Long: "zmkbuild lists the targets in build.yaml, lets you pick one and builds it\n" +
			"with west inside the ZMK toolchain image. The firmware is copied to\n" +
			"manual_build/artifacts/output.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runBuild,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("workspace", "w", "", "Workspace root containing build.yaml (default: search upwards from the current directory)")
	rootCmd.PersistentFlags().String("image", "", "Toolchain image (overrides ZMKBUILD_IMAGE and manual_build/.env)")
	rootCmd.PersistentFlags().String("runtime", "", "Container runtime binary (overrides ZMKBUILD_RUNTIME and manual_build/.env)")
	addBuildFlags(rootCmd)

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) workspaceOptions(cmd *cobra.Command) (app.WorkspaceOptions, error) {
	workspace, _ := cmd.Flags().GetString("workspace")
	if workspace != "" {
		return app.WorkspaceOptions{Workspace: workspace}, nil
	}

	dir, err := c.getwd()
	if err != nil {
		return app.WorkspaceOptions{}, zerr.Wrap(err, "failed to get working directory")
	}
	return app.WorkspaceOptions{Dir: dir}, nil
}

func toolchainOverride(cmd *cobra.Command) domain.Toolchain {
	image, _ := cmd.Flags().GetString("image")
	runtime, _ := cmd.Flags().GetString("runtime")
	return domain.Toolchain{Runtime: runtime, Image: image}
}
