package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/cleanfilenames/internal/models"
	"github.com/harrison/cleanfilenames/internal/rename"
	"github.com/mattn/go-isatty"
)

// ConsoleLogger logs run progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// It supports log level filtering to control message verbosity.
// Color output is enabled automatically when the writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
	progress    *ProgressBar
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: IsTerminal(writer),
	}
}

// IsTerminal reports whether w is a terminal that should receive colors.
// NO_COLOR and a dumb TERM disable colors through fatih/color.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColor forces colored output on or off.
func (cl *ConsoleLogger) SetColor(enabled bool) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.colorOutput = enabled
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !enabled(cl.logLevel, level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.write(cl.formatLine(timestamp(), level, message))
}

// write must be called with the mutex held.
func (cl *ConsoleLogger) write(s string) {
	_, _ = io.WriteString(cl.writer, s)
}

// formatLine renders "[HH:MM:SS] [LEVEL] message", coloring the level tag
// when color output is on.
func (cl *ConsoleLogger) formatLine(ts, level, message string) string {
	tag := level
	if cl.colorOutput {
		switch strings.ToUpper(level) {
		case "TRACE":
			tag = color.New(color.FgHiBlack).Sprint(level)
		case "DEBUG":
			tag = color.New(color.FgCyan).Sprint(level)
		case "INFO":
			tag = color.New(color.FgBlue).Sprint(level)
		case "WARN":
			tag = color.New(color.FgYellow).Sprint(level)
		case "ERROR":
			tag = color.New(color.FgRed).Sprint(level)
		}
	}
	return fmt.Sprintf("[%s] [%s] %s\n", ts, tag, message)
}

// LogRunStart logs the start of a run at INFO level.
// Format: "[HH:MM:SS] [INFO] Starting <mode> of <root>: <n> candidates"
func (cl *ConsoleLogger) LogRunStart(root string, mode rename.Mode, total int) {
	if cl.writer == nil || !enabled(cl.logLevel, "info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	cl.progress = NewProgressBar(total, 20, cl.colorOutput)
	cl.progress.SetPrefix("Progress: ")

	label := "candidates"
	if total == 1 {
		label = "candidate"
	}
	modeText := mode.String()
	if cl.colorOutput {
		modeText = color.New(color.Bold).Sprint(modeText)
	}
	cl.write(cl.formatLine(timestamp(), "INFO", fmt.Sprintf("Starting %s of %s: %d %s", modeText, root, total, label)))
}

// LogOutcome logs one settled candidate. Failures are logged at WARN,
// successes at DEBUG followed by the progress bar.
func (cl *ConsoleLogger) LogOutcome(c *models.Candidate, index, total int) {
	if cl.writer == nil {
		return
	}

	level := "DEBUG"
	if c.Status.IsError() {
		level = "WARN"
	}
	if !enabled(cl.logLevel, level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	line := fmt.Sprintf("[%d/%d] %s", index+1, total, outcomeLine(c))
	if cl.colorOutput {
		line = statusColor(c.Status).Sprint(line)
	}
	ts := timestamp()
	cl.write(cl.formatLine(ts, level, line))

	if level == "DEBUG" && cl.progress != nil {
		cl.progress.Update(index + 1)
		cl.write(cl.formatLine(ts, "DEBUG", cl.progress.Render()))
	}
}

// LogSummary logs the run summary at INFO level, then every failure.
func (cl *ConsoleLogger) LogSummary(res *rename.Result, duration time.Duration) {
	if cl.writer == nil || !enabled(cl.logLevel, "info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	s := res.Summary

	header := "=== Rename Summary ==="
	done := fmt.Sprintf("Done: %d", s.Done)
	failed := fmt.Sprintf("Errors: %d", s.Errors)
	if cl.colorOutput {
		header = color.New(color.Bold).Sprint(header)
		done = color.New(color.FgGreen).Sprint(done)
		if s.Errors > 0 {
			failed = color.New(color.FgRed).Sprint(failed)
		}
	}

	var b strings.Builder
	b.WriteString(cl.formatLine(ts, "INFO", header))
	b.WriteString(cl.formatLine(ts, "INFO", fmt.Sprintf("Root: %s", res.Root)))
	b.WriteString(cl.formatLine(ts, "INFO", fmt.Sprintf("Candidates: %d (%d files, %d directories)", s.Total, s.Files, s.Directories)))
	b.WriteString(cl.formatLine(ts, "INFO", done))
	b.WriteString(cl.formatLine(ts, "INFO", failed))
	if s.Pending > 0 {
		b.WriteString(cl.formatLine(ts, "INFO", fmt.Sprintf("Not attempted: %d", s.Pending)))
	}
	b.WriteString(cl.formatLine(ts, "INFO", fmt.Sprintf("Duration: %s", formatDuration(duration))))
	b.WriteString(cl.formatLine(ts, "INFO", s.String()))
	cl.write(b.String())
}

// statusColor picks the color for a candidate status.
func statusColor(s models.Status) *color.Color {
	switch {
	case s.IsError():
		return color.New(color.FgRed)
	case s == models.StatusDoneDryRun:
		return color.New(color.FgCyan)
	case s == models.StatusDone:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgYellow)
	}
}
