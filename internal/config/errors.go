package config

import (
	"fmt"
	"strings"
)

// ConfigError reports a configuration that cannot be used: a pattern that
// does not compile, malformed YAML, an unknown preset or an invalid field.
// It is always fatal before any scanning starts.
type ConfigError struct {
	Path    string // Config file involved, if any
	Field   string // Offending field, if known
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var sb strings.Builder
	sb.WriteString("config")
	if e.Path != "" {
		sb.WriteString(fmt.Sprintf(" %s", e.Path))
	}
	if e.Field != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", e.Field))
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
