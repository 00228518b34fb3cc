package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the build configurations in build.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := c.workspaceOptions(cmd)
			if err != nil {
				return err
			}
			return c.app.List(cmd.Context(), ws)
		},
	}
}
