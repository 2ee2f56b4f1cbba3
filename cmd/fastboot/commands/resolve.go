package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/fastboot/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [requests...]",
		Short: "Resolve module requests through the cache",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			from, _ := cmd.Flags().GetString("from")
			showStats, _ := cmd.Flags().GetBool("stats")

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

			var stats domain.Stats
			if showStats {
				stats, err = c.app.Stats()
				if err != nil {
					return c.stopAfter(ctx, err)
				}
			}

			if err := c.app.Stop(ctx); err != nil {
				return err
			}

			if showStats {
				return c.render(cmd.OutOrStdout(), stats, c.app.Probes())
			}
			return nil
		},
	}
	cmd.Flags().StringP("from", "f", "", "File issuing the requests (default: the working directory)")
	cmd.Flags().BoolP("stats", "s", false, "Print cache statistics and filesystem probes")
	return cmd
}

// resolveAll prints the resolved path of every request on its own line.
func (c *CLI) resolveAll(ctx context.Context, cmd *cobra.Command, requests []string, caller *domain.Caller) error {
	for _, request := range requests {
		path, err := c.app.Resolve(ctx, request, caller)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

// callerFor returns a file caller for from, or a directory caller for the
// working directory when from is empty.
func callerFor(from string) (*domain.Caller, error) {
	if from != "" {
		abs, err := filepath.Abs(from)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid caller"), "from", from)
		}
		return domain.FileCaller(abs), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get working directory")
	}
	return domain.DirCaller(cwd), nil
}
