package models

import (
	"fmt"
	"path/filepath"
)

// ItemType distinguishes file candidates from directory candidates.
type ItemType int

const (
	// TypeFile is a regular file (or any non-directory entry).
	TypeFile ItemType = iota
	// TypeDirectory is a directory, including the scan root.
	TypeDirectory
)

// String returns the lowercase label used in reports and the journal.
func (t ItemType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// ParseItemType converts a label produced by String back into an ItemType.
func ParseItemType(s string) (ItemType, error) {
	switch s {
	case "file":
		return TypeFile, nil
	case "directory":
		return TypeDirectory, nil
	default:
		return TypeFile, fmt.Errorf("unknown item type %q", s)
	}
}

// Status is the outcome state of a single candidate.
//
// Pending is the only non-terminal state. A candidate moves to exactly one of
// the terminal states during an apply pass and is never retried within it.
type Status int

const (
	StatusPending Status = iota
	StatusDone
	StatusDoneDryRun
	StatusError
	// StatusErrorEdited marks a failure of a candidate whose target was set
	// by a manual edit.
	StatusErrorEdited
)

// String returns the label shown in reports.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusDone:
		return "done"
	case StatusDoneDryRun:
		return "done (dry run)"
	case StatusError:
		return "error"
	case StatusErrorEdited:
		return "error (edited)"
	default:
		return "unknown"
	}
}

// ParseStatus converts a label produced by String back into a Status.
func ParseStatus(s string) (Status, error) {
	for _, st := range []Status{StatusPending, StatusDone, StatusDoneDryRun, StatusError, StatusErrorEdited} {
		if st.String() == s {
			return st, nil
		}
	}
	return StatusPending, fmt.Errorf("unknown status %q", s)
}

// IsDone reports whether the status is one of the successful terminal states.
func (s Status) IsDone() bool {
	return s == StatusDone || s == StatusDoneDryRun
}

// IsError reports whether the status is one of the error states.
func (s Status) IsError() bool {
	return s == StatusError || s == StatusErrorEdited
}

// Candidate is a proposed rename of one filesystem entry.
type Candidate struct {
	// ID is the absolute path the entry had when it was collected. It is the
	// candidate's identity and is never rewritten.
	ID string

	// OldPath is the entry's current path. The applier rewrites its prefix
	// when an ancestor directory was renamed earlier in the same pass.
	OldPath string

	// NewPath is filepath.Dir(OldPath) joined with the target basename.
	NewPath string

	// Target is the normalized basename computed at collection time.
	Target string

	// Override is a manually edited basename; Edited is set when present.
	Override string
	Edited   bool

	Type  ItemType
	Depth int

	Status  Status
	Message string

	// Err is the typed cause behind an error status, if any.
	Err error
}

// OldName returns the basename of OldPath.
func (c *Candidate) OldName() string {
	return filepath.Base(c.OldPath)
}

// NewName returns the basename of NewPath.
func (c *Candidate) NewName() string {
	return filepath.Base(c.NewPath)
}

// DesiredName is the unsuffixed basename the candidate wants: the manual
// override when present, otherwise the normalized target.
func (c *Candidate) DesiredName() string {
	if c.Edited {
		return c.Override
	}
	return c.Target
}

// Fail moves the candidate into the matching error state for err.
func (c *Candidate) Fail(err error) {
	c.Status = StatusError
	if c.Edited {
		c.Status = StatusErrorEdited
	}
	c.Err = err
	c.Message = err.Error()
}

// Reset returns the candidate to Pending and clears any outcome.
func (c *Candidate) Reset() {
	c.Status = StatusPending
	c.Message = ""
	c.Err = nil
}
