package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/fastboot/internal/ui/output"
	"go.trai.ch/fastboot/internal/ui/style"
)

func (c *CLI) newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed [requests...]",
		Short: "Resolve requests and write the startup seed file",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			caller, err := callerFor(from)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := c.app.Start(ctx, c.startOptions()); err != nil {
				return err
			}

			if err := c.resolveAll(ctx, cmd, args, caller); err != nil {
				return c.stopAfter(ctx, err)
			}
			if err := c.app.SaveStartupSeed(ctx); err != nil {
				return c.stopAfter(ctx, err)
			}

			stats, err := c.app.Stats()
			if err != nil {
				return c.stopAfter(ctx, err)
			}
			if err := c.app.Stop(ctx); err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			msg := fmt.Sprintf("%s wrote startup seed with %d entries", style.Check, stats.Entries)
			_, _ = out.WriteString(out.String(msg).Foreground(out.Color(string(style.Green))).String() + "\n")
			return nil
		},
	}
	cmd.Flags().StringP("from", "f", "", "File issuing the requests (default: the working directory)")
	return cmd
}
