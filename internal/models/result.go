package models

import "fmt"

// Summary aggregates the outcome of a batch of candidates.
type Summary struct {
	Total       int // Total number of candidates
	Files       int // File candidates
	Directories int // Directory candidates
	Done        int // Done or done (dry run)
	Errors      int // Error or error (edited)
	Pending     int // Not attempted
	DryRun      bool
}

// String renders the short human report for the summary.
func (s Summary) String() string {
	if s.Total == 0 {
		return "No changes needed."
	}
	if s.Done == 0 && s.Errors == 0 {
		return fmt.Sprintf("Found %d rename %s (%d %s, %d %s).",
			s.Total, plural(s.Total, "candidate", "candidates"),
			s.Files, plural(s.Files, "file", "files"),
			s.Directories, plural(s.Directories, "directory", "directories"))
	}

	verb := "Completed"
	if s.DryRun {
		verb = "Simulated"
	}
	msg := fmt.Sprintf("%s %d of %d %s (%d %s)",
		verb, s.Done, s.Total, plural(s.Total, "rename", "renames"),
		s.Errors, plural(s.Errors, "error", "errors"))
	if s.Pending > 0 {
		msg += fmt.Sprintf(", %d not attempted", s.Pending)
	}
	return msg + "."
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
