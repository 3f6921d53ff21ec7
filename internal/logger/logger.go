// Package logger reports the progress and outcome of rename runs.
//
// ConsoleLogger writes leveled, optionally colored lines to a terminal;
// FileLogger keeps one log file per run plus a latest.log symlink. Both
// implement RunLogger and can be combined with MultiLogger. All loggers are
// safe for concurrent use.
package logger

import (
	"fmt"
	"time"

	"github.com/harrison/cleanfilenames/internal/models"
	"github.com/harrison/cleanfilenames/internal/rename"
)

// RunLogger receives the lifecycle of one run: its start, every settled
// candidate, and the final result.
type RunLogger interface {
	rename.Logger
	LogRunStart(root string, mode rename.Mode, total int)
	LogSummary(res *rename.Result, duration time.Duration)
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogRunStart is a no-op implementation.
func (n *NoOpLogger) LogRunStart(string, rename.Mode, int) {}

// LogOutcome is a no-op implementation.
func (n *NoOpLogger) LogOutcome(*models.Candidate, int, int) {}

// LogSummary is a no-op implementation.
func (n *NoOpLogger) LogSummary(*rename.Result, time.Duration) {}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// outcomeLine is the plain text of one settled candidate.
func outcomeLine(c *models.Candidate) string {
	switch {
	case c.Status.IsError():
		return fmt.Sprintf("Failed: %s -> %s: %s", c.OldPath, c.NewPath, c.Message)
	case c.Status == models.StatusDoneDryRun:
		return fmt.Sprintf("Would rename [%s] %s -> %s", c.Type, c.OldPath, c.NewName())
	case c.Status == models.StatusDone:
		return fmt.Sprintf("Renamed [%s] %s -> %s", c.Type, c.OldPath, c.NewName())
	default:
		return fmt.Sprintf("Pending [%s] %s -> %s", c.Type, c.OldPath, c.NewName())
	}
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "120ms", "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}
