package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/cleanfilenames/internal/journal"
	"github.com/harrison/cleanfilenames/internal/models"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the 'cleanfilenames history' command
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List applied runs recorded in the history journal",
		Long: `List the runs recorded by 'run --apply', most recent first.

Use 'history show <run-id>' to see every rename of a run. Run IDs may be
abbreviated to any unique prefix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, func(ctx context.Context, store *journal.Store) error {
				runs, err := store.ListRuns(ctx, limit)
				if err != nil {
					return err
				}
				printRunList(cmd.OutOrStdout(), runs)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list (0 = all)")
	cmd.PersistentFlags().String("db-path", "", "Path to history database (default: from config)")

	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryDeleteCommand())

	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show every rename of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, func(ctx context.Context, store *journal.Store) error {
				run, err := store.GetRun(ctx, args[0])
				if err != nil {
					return err
				}
				printRunDetail(cmd.OutOrStdout(), run)
				return nil
			})
		},
	}
}

func newHistoryDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a recorded run from the journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return withJournal(cmd, func(ctx context.Context, store *journal.Store) error {
				run, err := store.GetRun(ctx, args[0])
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "This will delete run %s (%s, %d %s) from the history.\n",
					shortID(run.ID), run.Root, run.Total, plural(run.Total, "entry", "entries"))
				if !yes && !confirmAction(cmd.InOrStdin(), out) {
					fmt.Fprintf(out, "Operation cancelled.\n")
					return nil
				}

				if err := store.DeleteRun(ctx, run.ID); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted run %s.\n", shortID(run.ID))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// withJournal opens the history journal for fn. A journal that was never
// written is reported instead of being created.
func withJournal(cmd *cobra.Command, fn func(context.Context, *journal.Store) error) error {
	dbPath, _ := cmd.Flags().GetString("db-path")
	if dbPath == "" {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if dbPath, err = historyPath(cfg); err != nil {
			return err
		}
	}

	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(cmd.OutOrStdout(), "No history recorded yet.\n")
		return nil
	}

	store, err := journal.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open history journal: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, store)
}

// printRunList formats runs as one line each
func printRunList(w io.Writer, runs []*journal.Run) {
	if len(runs) == 0 {
		fmt.Fprintf(w, "No history recorded yet.\n")
		return
	}

	bold := color.New(color.Bold)
	red := color.New(color.FgRed)

	bold.Fprintf(w, "%-8s  %-19s  %-7s  %-9s  %s\n", "ID", "STARTED", "MODE", "DONE", "ROOT")
	for _, r := range runs {
		fmt.Fprintf(w, "%-8s  %-19s  %-7s  %-9s  %s", shortID(r.ID), formatTimestamp(r.StartedAt),
			r.Mode, fmt.Sprintf("%d/%d", r.Done, r.Total), r.Root)
		if r.Errors > 0 {
			red.Fprintf(w, "  (%d %s)", r.Errors, plural(r.Errors, "error", "errors"))
		}
		fmt.Fprintln(w)
	}
}

// printRunDetail prints a run header followed by its entries
func printRunDetail(w io.Writer, r *journal.Run) {
	cyan := color.New(color.FgCyan, color.Bold)
	gray := color.New(color.FgHiBlack)

	cyan.Fprintf(w, "=== Run %s ===\n", r.ID)
	fmt.Fprintf(w, "Root: %s\n", r.Root)
	fmt.Fprintf(w, "Mode: %s\n", r.Mode)
	if r.Pattern != "" {
		fmt.Fprintf(w, "Pattern: %s\n", r.Pattern)
	}
	fmt.Fprintf(w, "Started: %s ", formatTimestamp(r.StartedAt))
	gray.Fprintf(w, "(%s ago)\n", formatAge(time.Since(r.StartedAt)))
	fmt.Fprintf(w, "Duration: %s\n", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
	fmt.Fprintf(w, "Done: %d of %d, errors: %d, not attempted: %d\n\n", r.Done, r.Total, r.Errors, r.Pending)

	for _, e := range r.Entries {
		fmt.Fprintf(w, "%s\n", entryLine(e))
	}
}

// entryLine renders one journal entry like the run report does.
func entryLine(e journal.Entry) string {
	line := fmt.Sprintf("[%s] %s -> %s (%s)", e.Type, e.OldPath, e.NewPath, e.Status)
	if e.Message != "" && e.Status != models.StatusDone {
		line += ": " + e.Message
	}
	if e.Status.IsError() {
		return color.New(color.FgRed).Sprint(line)
	}
	return line
}

// formatTimestamp formats a timestamp in local time
func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

// formatAge formats a duration for human-readable display
func formatAge(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%.1fh", d.Hours())
	}
	days := int(d.Hours() / 24)
	return fmt.Sprintf("%dd", days)
}

// confirmAction prompts the user for confirmation
func confirmAction(in io.Reader, out io.Writer) bool {
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "Continue? [y/N]: ")

	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return response == "y" || response == "yes"
}
