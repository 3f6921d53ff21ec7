package rename

import (
	"os"
	"strings"

	"github.com/harrison/cleanfilenames/internal/models"
)

// SetTarget applies a manual edit of a candidate's target basename.
//
// Empty names, "." and "..", and names containing a path separator are
// rejected with a *ValidationError; the candidate is left unchanged and the
// filesystem is not consulted. An accepted edit is not checked for
// collisions: other candidates may still change in the same editing session,
// so a clash is only reported when the batch is applied.
func SetTarget(c *models.Candidate, name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Name: name, Message: "name is empty"}
	}
	if name == "." || name == ".." {
		return &ValidationError{Name: name, Message: "name is reserved"}
	}
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, os.PathSeparator) {
		return &ValidationError{Name: name, Message: "name contains a path separator"}
	}
	if c.Status.IsDone() {
		return &ValidationError{Name: name, Message: "candidate was already applied"}
	}

	c.Override = name
	c.Edited = true
	c.NewPath = joinTarget(c.OldPath, name)
	c.Reset()
	return nil
}

// ClearTarget drops a manual edit and restores the normalized target.
func ClearTarget(c *models.Candidate) {
	if !c.Edited || c.Status.IsDone() {
		return
	}
	c.Override = ""
	c.Edited = false
	c.NewPath = joinTarget(c.OldPath, c.Target)
	c.Reset()
}
