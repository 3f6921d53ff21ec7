package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/harrison/cleanfilenames/internal/config"
	"github.com/harrison/cleanfilenames/internal/display"
	"github.com/harrison/cleanfilenames/internal/tokens"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Long: `Load the configuration and check it for:
  - Malformed YAML
  - Unknown presets and log levels
  - A custom regex that does not compile
  - Tokens containing characters that can never appear in a filename
  - Duplicate tokens (reported as a warning)

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, explicit, err := configPath(cmd)
			if err != nil {
				return err
			}
			return validateConfigWithOutput(path, explicit, cmd.OutOrStdout())
		},
	}

	return cmd
}

// validateConfigWithOutput validates the config at path, writing the report
// to output. A missing file is only an error when it was named explicitly.
func validateConfigWithOutput(path string, explicit bool, output io.Writer) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	var cfg *config.Config
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil || explicit:
		c, err := config.LoadConfig(path)
		if err != nil {
			red.Fprintf(output, "✗ Validation failed\n")
			fmt.Fprintf(output, "  %v\n", err)
			return err
		}
		cfg = c
		fmt.Fprintf(output, "Config: %s\n", path)
	case errors.Is(statErr, fs.ErrNotExist):
		cfg = config.DefaultConfig()
		fmt.Fprintf(output, "Config: %s (not found, using defaults)\n", path)
	default:
		return fmt.Errorf("failed to access config: %w", statErr)
	}

	var problems []error
	if err := cfg.Validate(); err != nil {
		problems = append(problems, err)
	}
	problems = append(problems, tokens.Validate(cfg.Tokens)...)

	spec := cfg.Pattern()
	fmt.Fprintf(output, "Pattern: %s (%s)\n", spec.Kind, spec.Expr())
	if spec.Kind == config.KindTokenList {
		n := len(spec.Tokens)
		fmt.Fprintf(output, "Tokens: %d %s", n, plural(n, "token", "tokens"))
		if cfg.Preset != "" {
			fmt.Fprintf(output, " (preset %q + %d configured)", cfg.Preset, len(cfg.Tokens))
		}
		fmt.Fprintln(output)
	}

	if w, ok := display.WarnDuplicateTokens(tokens.FindDuplicates(cfg.Tokens)); ok {
		w.Display(output)
	}

	if len(problems) > 0 {
		red.Fprintf(output, "✗ Validation failed\n")
		for _, p := range problems {
			fmt.Fprintf(output, "  - %v\n", p)
		}
		return fmt.Errorf("found %d %s", len(problems), plural(len(problems), "problem", "problems"))
	}

	green.Fprintf(output, "✓ Configuration is valid\n")
	return nil
}
