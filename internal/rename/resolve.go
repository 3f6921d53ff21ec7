package rename

import (
	"github.com/harrison/cleanfilenames/internal/models"
)

// Resolve detects colliding targets and either flags or suffixes them.
//
// A collision is two or more candidates sharing a target path (compared with
// case folding when opts.CaseInsensitive is set), or a target that already
// exists on disk as a different entry. Without opts.AutoResolveConflicts each
// involved candidate becomes an Error with a *CollisionError. With it, the
// first candidate of a group (in slice order) keeps the plain target when
// the disk allows and the others get " (1)", " (2)", ... until the path is
// free both on disk and among all other targets.
//
// Resolve is re-entrant: state it produced on an earlier call is reset and
// recomputed, so calling it again on an unchanged set with unchanged disk
// state yields the same targets. Candidates that are done, failed on disk or
// were unreadable are left alone. Manually edited candidates are not checked
// here; their targets are only reserved so that suffixes avoid them, and
// their collisions surface at apply time.
func Resolve(cands []*models.Candidate, opts Options) []*models.Candidate {
	keys := newPathKeyer(opts.CaseInsensitive)

	reserved := make(map[string]bool)
	var active []*models.Candidate

	for _, c := range cands {
		resettable := c.Status == models.StatusPending ||
			(c.Status.IsError() && resolutionOwned(c.Err))
		if !resettable {
			if c.Status.IsDone() {
				reserved[keys.key(c.NewPath)] = true
			}
			continue
		}

		if c.Status != models.StatusPending {
			c.Reset()
		}
		c.NewPath = joinTarget(c.OldPath, c.DesiredName())

		if c.Edited {
			reserved[keys.key(c.NewPath)] = true
			continue
		}
		if err := validateName(c.Target); err != nil {
			c.Fail(err)
			continue
		}
		active = append(active, c)
	}

	// Group by target key, keeping first-appearance order.
	groups := make(map[string][]*models.Candidate)
	var order []string
	for _, c := range active {
		k := keys.key(c.NewPath)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], c)
	}

	// Every plain target is spoken for before any suffix is chosen, so a
	// suffix never lands on a later group's target.
	taken := make(map[string]bool, len(order)+len(reserved))
	for k := range reserved {
		taken[k] = true
	}
	for _, k := range order {
		taken[k] = true
	}

	for _, k := range order {
		group := groups[k]
		first := group[0]
		onDisk := keys.occupied(first.NewPath, first.OldPath)
		shared := len(group) > 1 || reserved[k]

		if !onDisk && !shared {
			continue
		}

		if !opts.AutoResolveConflicts {
			for _, c := range group {
				kind := DuplicateTarget
				if keys.occupied(c.NewPath, c.OldPath) {
					kind = TargetExists
				}
				c.Fail(&CollisionError{Kind: kind, Target: c.NewPath})
			}
			continue
		}

		rest := group
		if !onDisk && !reserved[k] {
			rest = group[1:]
		}

		n := 1
		for _, c := range rest {
			plain := c.NewPath
			for {
				next := withSuffix(plain, n, c.Type)
				n++
				nk := keys.key(next)
				if taken[nk] || keys.occupied(next, c.OldPath) {
					continue
				}
				taken[nk] = true
				c.NewPath = next
				break
			}
		}
	}

	return cands
}

func validateName(name string) error {
	switch name {
	case "":
		return &ValidationError{Name: name, Message: "name is empty after removing tags"}
	case ".", "..":
		return &ValidationError{Name: name, Message: "name is reserved"}
	}
	return nil
}
