package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/harrison/cleanfilenames/internal/filelock"
	"gopkg.in/yaml.v3"
)

// HistoryConfig controls the rename journal.
type HistoryConfig struct {
	// Enabled records every applied (non dry-run) batch in the journal
	Enabled bool `yaml:"enabled"`

	// DBPath is the journal database path; empty means $HOME/history.db
	DBPath string `yaml:"db_path,omitempty"`
}

// Config is the user-facing configuration of cleanfilenames.
type Config struct {
	// Tokens are literal tag contents stripped when wrapped in parentheses
	Tokens []string `yaml:"tokens"`

	// Preset names an embedded token list merged in front of Tokens
	Preset string `yaml:"preset"`

	// Regex is a custom pattern used verbatim instead of the token list
	Regex string `yaml:"regex,omitempty"`

	// RenameDirectories also renames directories below the root
	RenameDirectories bool `yaml:"rename_directories"`

	// RenameRoot allows the scanned root directory itself to be renamed
	RenameRoot bool `yaml:"rename_root"`

	// StopOnError halts an apply pass at the first failure
	StopOnError bool `yaml:"stop_on_error"`

	// AutoResolveConflicts appends " (N)" suffixes instead of failing collisions
	AutoResolveConflicts bool `yaml:"auto_resolve_conflicts"`

	// CaseInsensitive compares rename targets case-insensitively
	CaseInsensitive bool `yaml:"case_insensitive"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables per-run log files when non-empty
	LogDir string `yaml:"log_dir,omitempty"`

	// History contains journal configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with the stock behaviour: the default
// preset, directories and root renamed, collisions reported as errors.
func DefaultConfig() *Config {
	return &Config{
		Tokens:               nil,
		Preset:               DefaultPreset,
		RenameDirectories:    true,
		RenameRoot:           true,
		StopOnError:          false,
		AutoResolveConflicts: false,
		CaseInsensitive:      defaultCaseInsensitive,
		LogLevel:             "info",
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// LoadConfig loads configuration from an explicitly named file.
// A missing file is an error; a malformed one is a ConfigError.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parseConfig(path, data)
}

// LoadDefault loads $HOME/config.yaml. If the file doesn't exist the
// defaults are returned without error and nothing is written.
func LoadDefault() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// parseConfig merges the YAML document over the defaults. Only keys that are
// present in the file override a default, so `rename_root: false` and an
// absent `rename_root` are told apart.
func parseConfig(path string, data []byte) (*Config, error) {
	cfg := DefaultConfig()

	type yamlHistory struct {
		Enabled *bool   `yaml:"enabled"`
		DBPath  *string `yaml:"db_path"`
	}
	type yamlConfig struct {
		Tokens               []string     `yaml:"tokens"`
		Preset               *string      `yaml:"preset"`
		Regex                *string      `yaml:"regex"`
		RenameDirectories    *bool        `yaml:"rename_directories"`
		RenameRoot           *bool        `yaml:"rename_root"`
		StopOnError          *bool        `yaml:"stop_on_error"`
		AutoResolveConflicts *bool        `yaml:"auto_resolve_conflicts"`
		CaseInsensitive      *bool        `yaml:"case_insensitive"`
		LogLevel             *string      `yaml:"log_level"`
		LogDir               *string      `yaml:"log_dir"`
		History              *yamlHistory `yaml:"history"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, &ConfigError{Path: path, Message: "failed to parse config file", Err: err}
	}

	if yamlCfg.Tokens != nil {
		cfg.Tokens = yamlCfg.Tokens
	}
	if yamlCfg.Preset != nil {
		cfg.Preset = *yamlCfg.Preset
	}
	if yamlCfg.Regex != nil {
		cfg.Regex = *yamlCfg.Regex
	}
	if yamlCfg.RenameDirectories != nil {
		cfg.RenameDirectories = *yamlCfg.RenameDirectories
	}
	if yamlCfg.RenameRoot != nil {
		cfg.RenameRoot = *yamlCfg.RenameRoot
	}
	if yamlCfg.StopOnError != nil {
		cfg.StopOnError = *yamlCfg.StopOnError
	}
	if yamlCfg.AutoResolveConflicts != nil {
		cfg.AutoResolveConflicts = *yamlCfg.AutoResolveConflicts
	}
	if yamlCfg.CaseInsensitive != nil {
		cfg.CaseInsensitive = *yamlCfg.CaseInsensitive
	}
	if yamlCfg.LogLevel != nil && *yamlCfg.LogLevel != "" {
		cfg.LogLevel = *yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != nil {
		cfg.LogDir = *yamlCfg.LogDir
	}
	if h := yamlCfg.History; h != nil {
		if h.Enabled != nil {
			cfg.History.Enabled = *h.Enabled
		}
		if h.DBPath != nil {
			cfg.History.DBPath = *h.DBPath
		}
	}

	return cfg, nil
}

// Save writes the configuration as YAML under a lock, atomically.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := filelock.LockAndWrite(path, data); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Pattern returns the pattern spec described by the configuration. A custom
// regex wins; otherwise the preset tokens followed by Tokens are used.
func (c *Config) Pattern() PatternSpec {
	if strings.TrimSpace(c.Regex) != "" {
		return RawPattern(c.Regex)
	}
	return TokenList(c.EffectiveTokens()...)
}

// EffectiveTokens returns the preset tokens followed by the configured
// tokens, trimmed, without blanks or exact duplicates.
func (c *Config) EffectiveTokens() []string {
	var all []string
	if c.Preset != "" {
		all = append(all, PresetTokens(c.Preset)...)
	}
	all = append(all, c.Tokens...)

	seen := make(map[string]bool, len(all))
	out := make([]string, 0, len(all))
	for _, tok := range all {
		tok = strings.TrimSpace(tok)
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// FlagOverrides carries CLI flag values; nil fields leave the config alone.
type FlagOverrides struct {
	Tokens               []string
	Preset               *string
	Regex                *string
	RenameDirectories    *bool
	RenameRoot           *bool
	StopOnError          *bool
	AutoResolveConflicts *bool
	CaseInsensitive      *bool
	LogLevel             *string
	LogDir               *string
	HistoryEnabled       *bool
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(f FlagOverrides) {
	if f.Tokens != nil {
		c.Tokens = f.Tokens
	}
	if f.Preset != nil {
		c.Preset = *f.Preset
	}
	if f.Regex != nil {
		c.Regex = *f.Regex
	}
	if f.RenameDirectories != nil {
		c.RenameDirectories = *f.RenameDirectories
	}
	if f.RenameRoot != nil {
		c.RenameRoot = *f.RenameRoot
	}
	if f.StopOnError != nil {
		c.StopOnError = *f.StopOnError
	}
	if f.AutoResolveConflicts != nil {
		c.AutoResolveConflicts = *f.AutoResolveConflicts
	}
	if f.CaseInsensitive != nil {
		c.CaseInsensitive = *f.CaseInsensitive
	}
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.LogDir != nil {
		c.LogDir = *f.LogDir
	}
	if f.HistoryEnabled != nil {
		c.History.Enabled = *f.HistoryEnabled
	}
}

// Validate validates the configuration values and compiles the pattern.
// Every failure is a ConfigError.
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return &ConfigError{
			Field:   "log_level",
			Message: fmt.Sprintf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel),
		}
	}

	if c.Preset != "" {
		if _, err := LoadPreset(c.Preset); err != nil {
			return err
		}
	}

	if _, err := c.Pattern().Compile(); err != nil {
		return err
	}

	return nil
}
