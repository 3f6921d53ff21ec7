package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harrison/cleanfilenames/internal/rename"
	"github.com/harrison/cleanfilenames/internal/watch"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <path>",
		Short: "Keep a directory tree clean as new entries arrive",
		Long: `Run once over the tree, then watch it and run again whenever new or
changed entries with tagged names appear.

Events are collected until the tree has been quiet for --quiet-period so a
download or copy in progress is handled in one pass. Like run, watch only
previews unless --apply is given. Stop with Ctrl+C.

Examples:
  # Clean everything dropped into ~/incoming
  cleanfilenames watch ~/incoming --apply

  # Wait longer for slow copies
  cleanfilenames watch ~/incoming --apply --quiet-period 10s`,
		Args: cobra.ExactArgs(1),
		RunE: watchCommand,
	}

	cmd.Flags().Bool("apply", false, "Perform the renames (default is preview only)")
	cmd.Flags().Bool("dry-run", false, "With --apply, simulate the renames without touching the filesystem")
	cmd.Flags().Duration("quiet-period", watch.DefaultQuietPeriod, "How long the tree must stay quiet before a pass runs")
	addPipelineFlags(cmd)

	return cmd
}

func watchCommand(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetDuration("quiet-period")
	if quiet <= 0 {
		return fmt.Errorf("--quiet-period must be positive, got %s", quiet)
	}

	s, err := newSession(cmd, args[0], runMode(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	// The initial pass also rejects a missing or non-directory root. It may
	// rename the root itself, in which case s.root already follows it.
	if _, err := s.pass(cmd); err != nil {
		return err
	}

	pattern := s.opts.Pattern
	match := func(name string) bool {
		return rename.Normalize(name, pattern) != name
	}
	w, err := watch.New(s.root, match)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.root, err)
	}
	defer func() { w.Close() }()
	w.SetQuietPeriod(quiet)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (quiet period %s, Ctrl+C to stop)\n", s.root, quiet)

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(cmd.ErrOrStderr(), "Stopped watching.")
			return nil

		case batch := <-w.Batches():
			s.info(fmt.Sprintf("%d tagged %s appeared, running a pass",
				len(batch), plural(len(batch), "entry", "entries")))
			for _, ev := range batch {
				s.console.LogDebug(fmt.Sprintf("%s %s at %s", ev.Op, ev.Path, ev.Timestamp.Format(time.TimeOnly)))
			}

			res, err := s.pass(cmd)
			if err != nil {
				return err
			}
			if failed := len(res.Failed()); failed > 0 {
				s.warn(fmt.Sprintf("%d %s failed, still watching",
					failed, plural(failed, "rename", "renames")))
			}
			// Renamed directories invalidate the watched paths below them.
			if s.root != w.Root() {
				w.Close()
				if w, err = watch.New(s.root, match); err != nil {
					return fmt.Errorf("failed to watch %s: %w", s.root, err)
				}
				w.SetQuietPeriod(quiet)
				s.info(fmt.Sprintf("Root renamed, now watching %s", s.root))
			} else if err := w.Rewatch(); err != nil {
				return fmt.Errorf("failed to watch %s: %w", s.root, err)
			}

		case err := <-w.Errors():
			s.warn(fmt.Sprintf("watch error: %v", err))
		}
	}
}

// info logs to the console and, when enabled, the run log file.
func (s *session) info(msg string) {
	s.console.LogInfo(msg)
	if s.fileLog != nil {
		s.fileLog.LogInfo(msg)
	}
}

func (s *session) warn(msg string) {
	s.console.LogWarn(msg)
	if s.fileLog != nil {
		s.fileLog.LogWarn(msg)
	}
}
