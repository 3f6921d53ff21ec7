package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harrison/cleanfilenames/internal/models"
	"github.com/harrison/cleanfilenames/internal/rename"
)

// FileLogger logs rename runs to files in a log directory.
// It creates one timestamped log file per run and maintains a latest.log
// symlink pointing to the most recent one.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger writing to logDir at the given level.
// It creates the log directory if it doesn't exist, opens a timestamped
// run log file, and creates/updates the latest.log symlink.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Generate timestamped filename: run-YYYYMMDD-HHMMSS.log
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", time.Now().Format("20060102-150405")))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.writeRunLog("=== cleanfilenames run log ===\n")
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))
	return fl, nil
}

// RunFile returns the path of this run's log file.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !enabled(fl.logLevel, level) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogRunStart logs the root, mode and candidate count at INFO level.
func (fl *FileLogger) LogRunStart(root string, mode rename.Mode, total int) {
	fl.logWithLevel("INFO", fmt.Sprintf("Starting %s of %s: %d candidates", mode, root, total))
}

// LogOutcome logs one settled candidate: failures at WARN, everything
// else at DEBUG.
func (fl *FileLogger) LogOutcome(c *models.Candidate, index, total int) {
	level := "DEBUG"
	if c.Status.IsError() {
		level = "WARN"
	}
	fl.logWithLevel(level, fmt.Sprintf("[%d/%d] %s", index+1, total, outcomeLine(c)))
}

// LogSummary logs the final counts and every failed candidate at INFO level.
func (fl *FileLogger) LogSummary(res *rename.Result, duration time.Duration) {
	if !enabled(fl.logLevel, "info") {
		return
	}

	s := res.Summary
	msg := "\n=== Rename Summary ===\n"
	msg += fmt.Sprintf("Root: %s\n", res.Root)
	msg += fmt.Sprintf("Mode: %s\n", res.Mode)
	msg += fmt.Sprintf("Candidates: %d (%d files, %d directories)\n", s.Total, s.Files, s.Directories)
	msg += fmt.Sprintf("Done: %d\n", s.Done)
	msg += fmt.Sprintf("Errors: %d\n", s.Errors)
	msg += fmt.Sprintf("Not attempted: %d\n", s.Pending)
	msg += fmt.Sprintf("Duration: %s\n", formatDuration(duration))

	if failed := res.Failed(); len(failed) > 0 {
		msg += "\nFailures:\n"
		for _, c := range failed {
			msg += fmt.Sprintf("  - %s -> %s: %s\n", c.OldPath, c.NewPath, c.Message)
		}
	}
	msg += s.String() + "\n"
	fl.writeRunLog(msg)
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}
	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
