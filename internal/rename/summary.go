package rename

import "github.com/harrison/cleanfilenames/internal/models"

// Summarize counts candidates by type and outcome. DryRun is set when any
// candidate finished as a simulated rename. An empty batch yields the zero
// Summary.
func Summarize(cands []*models.Candidate) models.Summary {
	var s models.Summary
	for _, c := range cands {
		s.Total++
		if c.Type == models.TypeDirectory {
			s.Directories++
		} else {
			s.Files++
		}

		switch {
		case c.Status == models.StatusDoneDryRun:
			s.Done++
			s.DryRun = true
		case c.Status.IsDone():
			s.Done++
		case c.Status.IsError():
			s.Errors++
		default:
			s.Pending++
		}
	}
	return s
}
