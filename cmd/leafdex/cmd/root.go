// Package cmd provides the CLI commands for the leafdex maintenance jobs.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leafdex/leafdex-server/internal/config"
	"github.com/leafdex/leafdex-server/internal/logger"
)

// app holds state shared by all subcommands, initialized in the root's
// PersistentPreRunE.
type app struct {
	cfg *config.Config
	log *slog.Logger
}

// NewRootCmd creates the root command for the leafdex CLI.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "leafdex",
		Short: "Maintenance jobs for the leafdex catalog",
		Long: `Leafdex maintenance CLI.

Jobs operate on the catalog dataset, the key-value cache, and the search
index. Configuration comes from the environment or a .env file;
progress goes to stdout, diagnostics to stderr.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.New(logger.Config{
				Writer:      os.Stderr,
				Environment: cfg.App.Environment,
				Level:       logger.ParseLevel(cfg.Logger.Level),
			})
			return nil
		},
	}

	cmd.AddCommand(newRebuildCmd(a))
	cmd.AddCommand(newPopulateCmd(a))
	cmd.AddCommand(newSitemapCmd(a))
	cmd.AddCommand(newServeCmd(a))

	return cmd
}

// Execute runs the root command. Errors are printed to stderr by cobra;
// the caller turns a non-nil return into a non-zero exit status.
func Execute() error {
	return NewRootCmd().Execute()
}
