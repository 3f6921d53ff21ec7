package cmd

import (
	"fmt"

	"github.com/harrison/cleanfilenames/internal/config"
	"github.com/spf13/cobra"
)

// configPath returns the --config value, or the default config location.
// The bool is true when the path was given explicitly.
func configPath(cmd *cobra.Command) (string, bool, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, true, nil
	}
	p, err := config.DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	return p, false, nil
}

// loadConfig loads the file named by --config, or the default config when
// the flag is absent. A missing default file yields the built-in defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path, explicit, err := configPath(cmd)
	if err != nil {
		return nil, "", err
	}

	var cfg *config.Config
	if explicit {
		cfg, err = config.LoadConfig(path)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, path, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, path, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
