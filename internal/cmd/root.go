package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for cleanfilenames
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanfilenames",
		Short: "Strip bracketed tags such as (USA) from file and directory names",
		Long: `cleanfilenames walks a directory tree and removes configured tags like
"(USA)" or "(En,Fr,De)" from file and directory names.

Runs preview by default. Conflicting targets are reported (or suffixed
with --auto-resolve), directories are renamed deepest first, and existing
files are never overwritten.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the returned error once
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: $CLEANFILENAMES_HOME/config.yaml)")

	// Add subcommands
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewWatchCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewTokensCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewConfigCommand())

	return cmd
}
