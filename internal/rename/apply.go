package rename

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/harrison/cleanfilenames/internal/models"
)

// Logger receives the outcome of every candidate the Applier settles.
// index is zero-based within the apply pass; total is the batch size.
type Logger interface {
	LogOutcome(c *models.Candidate, index, total int)
}

type nopLogger struct{}

func (nopLogger) LogOutcome(*models.Candidate, int, int) {}

// Applier executes or simulates a resolved batch of renames.
type Applier struct {
	opts   Options
	logger Logger

	// rename is os.Rename; tests swap it to inject failures.
	rename func(oldpath, newpath string) error
}

// NewApplier creates an Applier. A nil logger discards outcomes.
func NewApplier(opts Options, logger Logger) *Applier {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Applier{
		opts:   opts,
		logger: logger,
		rename: os.Rename,
	}
}

// Apply walks cands in the order Collect produced (directories deepest
// first, then files) and settles every Pending candidate exactly once.
//
// Each candidate's paths are first rewritten through the table of
// directories renamed earlier in the pass. With dryRun nothing on disk is
// touched, the table stays empty, and successful candidates become
// DoneDryRun. A rename never overwrites: a target occupied on disk by a
// different entry, or already claimed earlier in the pass, fails the
// candidate with a *CollisionError. With StopOnError the first failure,
// including reaching a candidate that already failed during resolution,
// ends the pass and everything after it stays Pending.
func (a *Applier) Apply(cands []*models.Candidate, dryRun bool) []*models.Candidate {
	remap := newRemapTable()
	keys := newPathKeyer(a.opts.CaseInsensitive)
	claimed := make(map[string]bool)
	total := len(cands)

	index := 0
	for _, pass := range []models.ItemType{models.TypeDirectory, models.TypeFile} {
		for _, c := range cands {
			if c.Type != pass {
				continue
			}
			i := index
			index++

			if c.Status.IsDone() {
				claimed[keys.key(c.NewPath)] = true
				continue
			}
			if c.Status.IsError() {
				// Unreadable entries were never rename attempts.
				var scan *ScanError
				if a.opts.StopOnError && !errors.As(c.Err, &scan) {
					return cands
				}
				continue
			}

			a.applyOne(c, dryRun, remap, keys, claimed)
			a.logger.LogOutcome(c, i, total)

			if c.Status.IsError() && a.opts.StopOnError {
				return cands
			}
		}
	}
	return cands
}

func (a *Applier) applyOne(c *models.Candidate, dryRun bool, remap *remapTable, keys *pathKeyer, claimed map[string]bool) {
	c.OldPath = remap.rewrite(c.OldPath)
	c.NewPath = joinTarget(c.OldPath, c.NewName())

	key := keys.key(c.NewPath)
	if claimed[key] {
		c.Fail(&CollisionError{Kind: DuplicateTarget, Target: c.NewPath})
		return
	}
	if keys.occupied(c.NewPath, c.OldPath) {
		c.Fail(&CollisionError{Kind: TargetExists, Target: c.NewPath})
		return
	}

	if dryRun {
		claimed[key] = true
		c.Status = models.StatusDoneDryRun
		c.Message = ""
		return
	}

	if err := a.rename(c.OldPath, c.NewPath); err != nil {
		c.Fail(NewFilesystemError("rename", c.OldPath, err))
		return
	}

	keys.forget(filepath.Dir(c.OldPath))
	claimed[key] = true
	c.Status = models.StatusDone
	c.Message = ""
	if c.Type == models.TypeDirectory {
		remap.add(c.OldPath, c.NewPath)
	}
}
