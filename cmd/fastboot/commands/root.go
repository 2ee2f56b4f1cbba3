// Package commands implements the CLI commands for the fastboot module location cache.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/fastboot/internal/app"
	"go.trai.ch/fastboot/internal/build"
	"go.trai.ch/fastboot/internal/core/domain"
)

// CLI represents the command line interface for fastboot.
type CLI struct {
	app      Application
	rootCmd  *cobra.Command
	settings settings
}

// Application represents the application logic interface.
type Application interface {
	Start(ctx context.Context, so app.StartOptions) error
	Stop(ctx context.Context) error
	Discard()
	Resolve(ctx context.Context, request string, caller *domain.Caller) (string, error)
	SaveStartupSeed(ctx context.Context) error
	Stats() (domain.Stats, error)
	Probes() domain.Probes
	Clean(ctx context.Context, so app.StartOptions, options app.CleanOptions) error
}

// settings holds the persistent flags shared by every command.
type settings struct {
	configPath   string
	scope        string
	cacheFile    string
	startupFile  string
	versionTag   string
	noVersionTag bool
	saveTimeout  time.Duration
	verbose      bool
	json         bool
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "fastboot",
		Short:         "A persistent cache for module resolution",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(versionLine() + "\n")
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.settings.configPath, "config", "c", "", "Path to the config file (default: ./fastboot.yaml)")
	flags.StringVar(&c.settings.scope, "scope", "", "Directory boundary of the cache (default: working directory)")
	flags.StringVar(&c.settings.cacheFile, "cache-file", "", "Path to the volatile cache file")
	flags.StringVar(&c.settings.startupFile, "startup-file", "", "Path to the startup seed file")
	flags.StringVar(&c.settings.versionTag, "version-tag", "", "Invalidation tag stamped into cache files")
	flags.BoolVar(&c.settings.noVersionTag, "no-version-tag", false, "Accept cache files regardless of their version tag")
	flags.DurationVar(&c.settings.saveTimeout, "save-timeout", 0, "Delay before a pending save is flushed")
	flags.BoolVarP(&c.settings.verbose, "verbose", "v", false, "Print cache status messages")
	flags.BoolVar(&c.settings.json, "json", false, "Emit JSON logs and output")

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newSeedCmd())
	rootCmd.AddCommand(c.newStatsCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// versionLine is printed by both --version and the version command.
func versionLine() string {
	return fmt.Sprintf("fastboot version %s (commit: %s, date: %s)", build.Version, build.Commit, build.Date)
}

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionLine())
		},
	}
}

// startOptions converts the persistent flags into app options.
func (c *CLI) startOptions() app.StartOptions {
	return app.StartOptions{
		ConfigPath: c.settings.configPath,
		Overrides: domain.Options{
			CacheScope:        c.settings.scope,
			CacheFile:         c.settings.cacheFile,
			StartupFile:       c.settings.startupFile,
			SaveTimeout:       c.settings.saveTimeout,
			VersionTag:        c.settings.versionTag,
			DisableVersionTag: c.settings.noVersionTag,
		},
		Verbose: c.settings.verbose,
		JSON:    c.settings.json,
	}
}

// stopAfter stops the app after a failed step, keeping err as the primary error.
func (c *CLI) stopAfter(ctx context.Context, err error) error {
	if stopErr := c.app.Stop(ctx); stopErr != nil {
		return errors.Join(err, stopErr)
	}
	return err
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
