package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zmkbuild/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Select a target and build its firmware",
		Args:  cobra.NoArgs,
		RunE:  c.runBuild,
	}
	addBuildFlags(cmd)
	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("select", "s", "", "Build the target with this 1-based index or shield name without prompting")
	cmd.Flags().Bool("timings", false, "Print how long each stage took")
}

func (c *CLI) runBuild(cmd *cobra.Command, _ []string) error {
	ws, err := c.workspaceOptions(cmd)
	if err != nil {
		return err
	}

	selection, _ := cmd.Flags().GetString("select")
	timings, _ := cmd.Flags().GetBool("timings")

	return c.app.Build(cmd.Context(), app.BuildOptions{
		WorkspaceOptions: ws,
		Toolchain:        toolchainOverride(cmd),
		Select:           selection,
		Timings:          timings,
	})
}
