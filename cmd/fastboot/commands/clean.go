package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fastboot/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the cache file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			startup, _ := cmd.Flags().GetBool("startup")
			return c.app.Clean(cmd.Context(), c.startOptions(), app.CleanOptions{Startup: startup})
		},
	}

	cmd.Flags().Bool("startup", false, "Also remove the startup seed file")

	return cmd
}
