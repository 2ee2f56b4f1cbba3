package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Load the cache files and print their status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := c.app.Start(ctx, c.startOptions()); err != nil {
				return err
			}
			// Nothing was resolved, so there is nothing to write back.
			defer c.app.Discard()

			stats, err := c.app.Stats()
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), stats, c.app.Probes())
		},
	}
}
