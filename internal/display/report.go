package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harrison/cleanfilenames/internal/models"
	"github.com/harrison/cleanfilenames/internal/rename"
)

// PreviewHint is printed after a preview run.
const PreviewHint = "Preview mode only. Use --apply to execute changes."

// WriteReport renders a finished run: one line per candidate, the summary
// and, for dry runs and applies, one line per failure.
func WriteReport(out io.Writer, res *rename.Result) {
	if len(res.Candidates) == 0 {
		fmt.Fprintln(out, res.Summary.String())
		return
	}

	fmt.Fprintf(out, "Found %d rename %s:\n", len(res.Candidates),
		plural(len(res.Candidates), "candidate", "candidates"))
	for _, c := range res.Candidates {
		fmt.Fprintln(out, CandidateLine(c))
	}

	if res.Mode == rename.ModePreview {
		if failed := res.Failed(); len(failed) > 0 {
			fmt.Fprintf(out, "\n%d %s cannot be renamed:\n", len(failed), plural(len(failed), "candidate", "candidates"))
			WriteFailures(out, failed)
		}
		fmt.Fprintf(out, "\n%s\n", PreviewHint)
		return
	}

	fmt.Fprintf(out, "\n%s\n", res.Summary.String())
	WriteFailures(out, res.Failed())
}

// CandidateLine renders "[type] old -> new", with the status appended once
// the candidate has left Pending.
func CandidateLine(c *models.Candidate) string {
	line := fmt.Sprintf("[%s] %s -> %s", c.Type, c.OldPath, c.NewPath)
	switch {
	case c.Status.IsError():
		return color.New(color.FgRed).Sprintf("%s (%s)", line, c.Status)
	case c.Status.IsDone():
		return line + color.New(color.FgGreen).Sprintf(" (%s)", c.Status)
	case c.Message != "":
		return line + color.New(color.FgYellow).Sprintf(" (note: %s)", c.Message)
	default:
		return line
	}
}

// WriteFailures prints " - Failed: <old> -> <new>: <reason>" per candidate.
func WriteFailures(out io.Writer, failed []*models.Candidate) {
	for _, c := range failed {
		fmt.Fprintf(out, " - Failed: %s -> %s: %s\n", c.OldPath, c.NewPath, c.Message)
	}
}
