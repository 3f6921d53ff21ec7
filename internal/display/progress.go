package display

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
)

// ProgressIndicator shows per-file progress while token files are imported
type ProgressIndicator struct {
	writer     io.Writer
	totalFiles int
	current    int
}

// NewProgressIndicator creates a new progress indicator
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer:     w,
		totalFiles: total,
		current:    0,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Importing token files:\n")
}

// Step displays progress for the current file: [N/Total] filename (count)
func (p *ProgressIndicator) Step(filename string, count int) {
	p.current++
	line := fmt.Sprintf("  [%d/%d] %s (%d %s)", p.current, p.totalFiles, filepath.Base(filename), count, plural(count, "token", "tokens"))
	color.New(color.FgCyan).Fprintln(p.writer, line)
}

// Complete displays the number of tokens added to the config
func (p *ProgressIndicator) Complete(added int) {
	mark := color.New(color.FgGreen).Sprint("✓")
	fmt.Fprintf(p.writer, "%s Imported %d new %s from %d %s\n",
		mark, added, plural(added, "token", "tokens"),
		p.totalFiles, plural(p.totalFiles, "file", "files"))
}
