package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/harrison/cleanfilenames/internal/config"
	"github.com/harrison/cleanfilenames/internal/display"
	"github.com/harrison/cleanfilenames/internal/filelock"
	"github.com/harrison/cleanfilenames/internal/journal"
	"github.com/harrison/cleanfilenames/internal/logger"
	"github.com/harrison/cleanfilenames/internal/rename"
	"github.com/harrison/cleanfilenames/internal/tokens"
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <path>",
		Short: "Find and rename tagged files and directories",
		Long: `Scan a directory tree for names containing configured tags and rename them.

Without --apply the run is a preview: candidates and conflicts are listed
and nothing is touched. With --apply the renames are performed, directories
deepest first, then files. --dry-run walks the full apply pass without
renaming anything.

Configuration is loaded from $CLEANFILENAMES_HOME/config.yaml if present.
CLI flags override configuration file settings.

Examples:
  # Preview what would change
  cleanfilenames run ~/roms

  # Rename for real, suffixing conflicting targets with " (1)", " (2)", ...
  cleanfilenames run ~/roms --apply --auto-resolve

  # Strip extra tags just for this run
  cleanfilenames run ~/roms --tokens Beta,Proto --apply

  # Simulate the apply pass with debug output
  cleanfilenames run ~/roms --apply --dry-run --verbose`,
		Args: cobra.ExactArgs(1),
		RunE: runCommand,
	}

	cmd.Flags().Bool("apply", false, "Perform the renames (default is preview only)")
	cmd.Flags().Bool("dry-run", false, "With --apply, simulate the renames without touching the filesystem")
	cmd.Flags().Bool("strict", false, "Exit non-zero when any candidate ends in an error")
	addPipelineFlags(cmd)

	return cmd
}

// addPipelineFlags registers the flags shared by run and watch.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("tokens", nil, "Tokens to strip, replacing the configured tokens (comma separated)")
	cmd.Flags().String("preset", "", "Embedded token preset to merge in front of the tokens")
	cmd.Flags().String("regex", "", "Custom regular expression used instead of the token list")
	cmd.Flags().Bool("rename-dirs", false, "Rename directories below the root")
	cmd.Flags().Bool("no-rename-dirs", false, "Only rename files")
	cmd.Flags().Bool("rename-root", false, "Allow the root directory itself to be renamed")
	cmd.Flags().Bool("no-rename-root", false, "Never rename the root directory")
	cmd.Flags().Bool("stop-on-error", false, "Halt at the first failed rename")
	cmd.Flags().Bool("auto-resolve", false, "Suffix conflicting targets with \" (N)\" instead of failing them")
	cmd.Flags().Bool("case-insensitive", false, "Treat targets differing only in case as conflicts")
	cmd.Flags().Bool("verbose", false, "Log every rename")
	cmd.Flags().String("log-dir", "", "Directory for per-run log files")
	cmd.Flags().Bool("no-history", false, "Do not record this run in the history journal")
}

// runOverrides maps the changed run flags onto config overrides.
func runOverrides(cmd *cobra.Command) (config.FlagOverrides, error) {
	flags := cmd.Flags()
	var o config.FlagOverrides

	if flags.Changed("rename-dirs") && flags.Changed("no-rename-dirs") {
		return o, fmt.Errorf("cannot use both --rename-dirs and --no-rename-dirs")
	}
	if flags.Changed("rename-root") && flags.Changed("no-rename-root") {
		return o, fmt.Errorf("cannot use both --rename-root and --no-rename-root")
	}

	boolFlag := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}
	negated := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		v = !v
		return &v
	}
	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	if flags.Changed("tokens") {
		o.Tokens, _ = flags.GetStringSlice("tokens")
		if o.Tokens == nil {
			o.Tokens = []string{}
		}
	}
	o.Preset = stringFlag("preset")
	o.Regex = stringFlag("regex")

	o.RenameDirectories = boolFlag("rename-dirs")
	if o.RenameDirectories == nil {
		o.RenameDirectories = negated("no-rename-dirs")
	}
	o.RenameRoot = boolFlag("rename-root")
	if o.RenameRoot == nil {
		o.RenameRoot = negated("no-rename-root")
	}
	o.StopOnError = boolFlag("stop-on-error")
	o.AutoResolveConflicts = boolFlag("auto-resolve")
	o.CaseInsensitive = boolFlag("case-insensitive")
	o.LogDir = stringFlag("log-dir")
	o.HistoryEnabled = negated("no-history")

	if v, _ := flags.GetBool("verbose"); v {
		level := "debug"
		o.LogLevel = &level
	}
	return o, nil
}

// runMode picks the pipeline mode from --apply and --dry-run.
func runMode(cmd *cobra.Command) rename.Mode {
	apply, _ := cmd.Flags().GetBool("apply")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	switch {
	case !apply:
		return rename.ModePreview
	case dryRun:
		return rename.ModeDryRun
	default:
		return rename.ModeApply
	}
}

// session is everything a rename pass needs once flags and config are merged.
type session struct {
	cfg     *config.Config
	opts    rename.Options
	root    string
	mode    rename.Mode
	log     logger.RunLogger
	console *logger.ConsoleLogger
	fileLog *logger.FileLogger
	lock    *filelock.FileLock
}

// newSession loads and validates the configuration, takes the root lock for
// modes that touch the tree and sets up logging. Close releases it all.
func newSession(cmd *cobra.Command, rootArg string, mode rename.Mode) (*session, error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	overrides, err := runOverrides(cmd)
	if err != nil {
		return nil, err
	}
	cfg.MergeWithFlags(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if w, ok := display.WarnDuplicateTokens(tokens.FindDuplicates(cfg.Tokens)); ok {
		w.Display(cmd.ErrOrStderr())
	}

	opts, err := rename.NewOptions(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	root, err := filepath.Abs(rootArg)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	s := &session{cfg: cfg, opts: opts, root: root, mode: mode}

	// Only one process may rename under a root at a time.
	if mode != rename.ModePreview {
		lockPath, err := config.RootLockPath(root)
		if err != nil {
			return nil, err
		}
		lock := filelock.NewFileLock(lockPath)
		if err := lock.Acquire(); err != nil {
			if errors.Is(err, filelock.ErrLocked) {
				return nil, fmt.Errorf("another cleanfilenames run is renaming %s", root)
			}
			return nil, err
		}
		s.lock = lock
	}

	s.console = logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	s.log = s.console
	if cfg.LogDir != "" && mode != rename.ModePreview {
		s.fileLog, err = logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to create file logger: %w", err)
		}
		s.log = logger.NewMultiLogger(s.console, s.fileLog)
	}
	return s, nil
}

// pass runs the pipeline once, prints the report and journals applied runs.
func (s *session) pass(cmd *cobra.Command) (*rename.Result, error) {
	out := cmd.OutOrStdout()

	started := time.Now()
	res, err := rename.Run(s.root, s.opts, s.mode, s.log)
	if err != nil {
		return nil, err
	}
	if s.mode != rename.ModePreview {
		s.log.LogSummary(res, time.Since(started))
	}

	display.WriteReport(out, res)

	if root := res.FinalRoot(); root != s.root {
		if err := s.moveRoot(root); err != nil {
			return nil, err
		}
	}

	if s.mode == rename.ModeApply && s.cfg.History.Enabled && len(res.Candidates) > 0 {
		id, err := recordRun(cmd.Context(), s.cfg, res, s.opts, started)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to record run history: %v\n", err)
		} else {
			fmt.Fprintf(out, "Recorded as run %s\n", shortID(id))
		}
	}
	return res, nil
}

// moveRoot follows a renamed root: later passes scan the new path and the
// lock moves to the new path's lock file.
func (s *session) moveRoot(root string) error {
	s.root = root
	if s.lock == nil {
		return nil
	}
	lockPath, err := config.RootLockPath(root)
	if err != nil {
		return err
	}
	lock := filelock.NewFileLock(lockPath)
	if err := lock.Acquire(); err != nil {
		if errors.Is(err, filelock.ErrLocked) {
			return fmt.Errorf("another cleanfilenames run is renaming %s", root)
		}
		return err
	}
	s.lock.Unlock()
	s.lock = lock
	return nil
}

// Close releases the file logger and the root lock.
func (s *session) Close() {
	if s.fileLog != nil {
		s.fileLog.Close()
	}
	if s.lock != nil {
		s.lock.Unlock()
	}
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args[0], runMode(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.pass(cmd)
	if err != nil {
		return err
	}
	if s.fileLog != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Log written to: %s\n", s.fileLog.RunFile())
	}

	// Failed candidates are already reported; only --strict turns them
	// into an exit status.
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		if failed := len(res.Failed()); failed > 0 {
			return fmt.Errorf("%d %s failed", failed, plural(failed, "rename", "renames"))
		}
	}
	return nil
}

// recordRun stores the finished batch in the history journal.
func recordRun(ctx context.Context, cfg *config.Config, res *rename.Result, opts rename.Options, started time.Time) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	dbPath, err := historyPath(cfg)
	if err != nil {
		return "", err
	}

	store, err := journal.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer store.Close()

	run := journal.NewRun(res.FinalRoot(), res.Mode.String(), opts.Pattern.String(), res.Candidates, res.Summary, started)
	if err := store.RecordRun(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}

// historyPath returns the configured journal path or the default one.
func historyPath(cfg *config.Config) (string, error) {
	if cfg.History.DBPath != "" {
		return cfg.History.DBPath, nil
	}
	return config.DefaultHistoryPath()
}

// shortID abbreviates a run ID for display; history show accepts prefixes.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
