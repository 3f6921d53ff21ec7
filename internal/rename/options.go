package rename

import (
	"regexp"

	"github.com/harrison/cleanfilenames/internal/config"
)

// Options is the configuration the pipeline runs with. It is passed
// explicitly into every call; the pipeline keeps no global state.
type Options struct {
	// Pattern matches the tags to strip. Never nil.
	Pattern *regexp.Regexp

	RenameDirectories    bool
	RenameRoot           bool
	StopOnError          bool
	AutoResolveConflicts bool

	// CaseInsensitive folds case when comparing target paths.
	CaseInsensitive bool
}

// NewOptions compiles the configuration's pattern and copies its flags.
// A pattern that fails to compile is returned as a *config.ConfigError.
func NewOptions(cfg *config.Config) (Options, error) {
	re, err := cfg.Pattern().Compile()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Pattern:              re,
		RenameDirectories:    cfg.RenameDirectories,
		RenameRoot:           cfg.RenameRoot,
		StopOnError:          cfg.StopOnError,
		AutoResolveConflicts: cfg.AutoResolveConflicts,
		CaseInsensitive:      cfg.CaseInsensitive,
	}, nil
}

func (o Options) pattern() *regexp.Regexp {
	if o.Pattern == nil {
		return neverMatch
	}
	return o.Pattern
}

var neverMatch = regexp.MustCompile(config.NeverMatch)
