package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/cleanfilenames/internal/config"
	"github.com/harrison/cleanfilenames/internal/display"
	"github.com/harrison/cleanfilenames/internal/tokens"
	"github.com/spf13/cobra"
)

// NewTokensCommand creates the 'cleanfilenames tokens' parent command
func NewTokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Inspect and manage the token list",
		Long: `Commands for listing, discovering and importing the tokens whose
parenthesized form is stripped from names.`,
	}

	cmd.AddCommand(newTokensListCommand())
	cmd.AddCommand(newTokensPresetsCommand())
	cmd.AddCommand(newTokensScanCommand())
	cmd.AddCommand(newTokensImportCommand())

	return cmd
}

func newTokensListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the effective tokens (preset followed by configured tokens)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if strings.TrimSpace(cfg.Regex) != "" {
				fmt.Fprintf(out, "Custom regex in use, tokens are ignored: %s\n", cfg.Regex)
			}
			for _, tok := range cfg.EffectiveTokens() {
				fmt.Fprintln(out, tok)
			}
			return nil
		},
	}
}

func newTokensPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the embedded token presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := config.ListPresets()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			bold := color.New(color.Bold)
			for _, p := range presets {
				bold.Fprintf(out, "%-10s", p.Name)
				fmt.Fprintf(out, " %s (%d %s)\n", p.Description, len(p.Tokens), plural(len(p.Tokens), "token", "tokens"))
			}
			return nil
		},
	}
}

func newTokensScanCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Report token usage and suggest unknown tags found under a directory",
		Long: `Walk a directory tree and count how often each known token appears in
parenthesized form, then list the parenthesized tags that are not known
tokens, most frequent first, with sample paths.

Nothing is renamed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			tracker := tokens.NewTracker(cfg.EffectiveTokens())
			skipped, err := tracker.ScanTree(args[0])
			if err != nil {
				return err
			}

			printTokenReport(cmd.OutOrStdout(), tracker, limit)

			errs := make([]error, 0, len(skipped))
			for _, e := range skipped {
				errs = append(errs, e)
			}
			if w, ok := display.WarnSkippedEntries(errs); ok {
				w.Display(cmd.ErrOrStderr())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of suggestions to show (0 = all)")
	return cmd
}

// printTokenReport writes known-token usage and unknown-tag suggestions.
func printTokenReport(w io.Writer, tracker *tokens.Tracker, limit int) {
	cyan := color.New(color.FgCyan, color.Bold)
	gray := color.New(color.FgHiBlack)

	cyan.Fprintf(w, "Known tokens in use:\n")
	used := 0
	for _, u := range tracker.Usage() {
		if u.Count == 0 {
			continue
		}
		used++
		fmt.Fprintf(w, "  %-20s %d\n", u.Token, u.Count)
	}
	if used == 0 {
		gray.Fprintf(w, "  (none)\n")
	}

	suggestions := tracker.SortedSuggestions()
	cyan.Fprintf(w, "\nUnknown tags:\n")
	if len(suggestions) == 0 {
		gray.Fprintf(w, "  (none)\n")
		return
	}
	shown := suggestions
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, s := range shown {
		fmt.Fprintf(w, "  %-20s %d\n", s.Token, s.Count)
		for _, sample := range s.Samples {
			gray.Fprintf(w, "      %s\n", sample)
		}
	}
	if hidden := len(suggestions) - len(shown); hidden > 0 {
		gray.Fprintf(w, "  ... and %d more\n", hidden)
	}
}

func newTokensImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file-or-directory>...",
		Short: "Import tokens from .txt, .yaml or .md files into the config",
		Long: `Read tokens from one or more files and append the new ones to the
configured token list.

  .txt/.list       one token per line, "#" starts a comment
  .yaml/.yml       a list, or a mapping with a "tokens" list
  .md/.markdown    one token per list item

A directory imports every supported file directly inside it. Tokens may be
written with or without their parentheses. The config file is only written
when every token is valid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runTokensImport,
	}
	return cmd
}

func runTokensImport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files, err := tokens.ExpandPaths(args)
	if err != nil {
		return err
	}

	progress := display.NewProgressIndicator(out, len(files))
	progress.Start()

	var imported []string
	for _, f := range files {
		list, err := tokens.LoadFile(f)
		if err != nil {
			return err
		}
		progress.Step(f, len(list))
		imported = append(imported, list...)
	}

	if w, ok := display.WarnInvalidTokens(tokens.Validate(imported)); ok {
		w.Display(cmd.ErrOrStderr())
		return fmt.Errorf("import aborted, no changes written")
	}

	existing := make(map[string]bool)
	for _, tok := range cfg.EffectiveTokens() {
		existing[tok] = true
	}
	added := 0
	for _, tok := range tokens.Dedupe(imported) {
		if existing[tok] {
			continue
		}
		cfg.Tokens = append(cfg.Tokens, tok)
		added++
	}
	progress.Complete(added)

	if added == 0 {
		fmt.Fprintf(out, "All tokens are already configured.\n")
		return nil
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Config written to: %s\n", path)
	return nil
}
