package rename

import "github.com/harrison/cleanfilenames/internal/models"

// Mode selects how far Run takes a batch.
type Mode int

const (
	// ModePreview collects and resolves but applies nothing.
	ModePreview Mode = iota
	// ModeDryRun runs the applier without touching the filesystem.
	ModeDryRun
	// ModeApply performs the renames.
	ModeApply
)

// String returns the mode label recorded in logs and the journal.
func (m Mode) String() string {
	switch m {
	case ModePreview:
		return "preview"
	case ModeDryRun:
		return "dry-run"
	case ModeApply:
		return "apply"
	default:
		return "unknown"
	}
}

// Result is the finished batch handed to presentation code.
type Result struct {
	Root       string
	Mode       Mode
	Candidates []*models.Candidate
	Summary    models.Summary
}

// HasErrors reports whether any candidate ended in an error state.
func (r *Result) HasErrors() bool {
	return r.Summary.Errors > 0
}

// Failed returns the candidates in an error state, in apply order.
func (r *Result) Failed() []*models.Candidate {
	var out []*models.Candidate
	for _, c := range r.Candidates {
		if c.Status.IsError() {
			out = append(out, c)
		}
	}
	return out
}

// FinalRoot returns the root's path after the batch: the new path when the
// root itself was renamed, Root otherwise.
func (r *Result) FinalRoot() string {
	for _, c := range r.Candidates {
		if c.ID == r.Root && c.Type == models.TypeDirectory && c.Status == models.StatusDone {
			return c.NewPath
		}
	}
	return r.Root
}

// StartLogger is implemented by loggers that want the batch size before
// the applier starts.
type StartLogger interface {
	LogRunStart(root string, mode Mode, total int)
}

// Run collects, resolves and, depending on mode, applies one batch as a
// single synchronous unit. The caller sees only the finished Result. A
// *PathError is returned before anything is collected.
func Run(root string, opts Options, mode Mode, logger Logger) (*Result, error) {
	absRoot, err := checkRoot(root)
	if err != nil {
		return nil, err
	}

	cands, err := Collect(absRoot, opts)
	if err != nil {
		return nil, err
	}
	Resolve(cands, opts)

	if sl, ok := logger.(StartLogger); ok && mode != ModePreview {
		sl.LogRunStart(absRoot, mode, len(cands))
	}

	switch mode {
	case ModeDryRun:
		NewApplier(opts, logger).Apply(cands, true)
	case ModeApply:
		NewApplier(opts, logger).Apply(cands, false)
	}

	return &Result{
		Root:       absRoot,
		Mode:       mode,
		Candidates: cands,
		Summary:    Summarize(cands),
	}, nil
}
