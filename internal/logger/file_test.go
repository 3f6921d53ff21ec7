package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrison/cleanfilenames/internal/rename"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ RunLogger = (*FileLogger)(nil)

func TestNewFileLogger(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	fl, err := NewFileLogger(logDir, "info")
	require.NoError(t, err)
	defer fl.Close()

	assert.DirExists(t, logDir)
	assert.True(t, strings.HasPrefix(filepath.Base(fl.RunFile()), "run-"))
	assert.True(t, strings.HasSuffix(fl.RunFile(), ".log"))

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(fl.RunFile()), target)
}

func TestFileLoggerReplacesLatestSymlink(t *testing.T) {
	logDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "run-old.log"), nil, 0644))
	require.NoError(t, os.Symlink("run-old.log", filepath.Join(logDir, "latest.log")))

	fl, err := NewFileLogger(logDir, "info")
	require.NoError(t, err)
	defer fl.Close()

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(fl.RunFile()), target)
}

func TestFileLoggerWritesRun(t *testing.T) {
	logDir := t.TempDir()
	fl, err := NewFileLogger(logDir, "debug")
	require.NoError(t, err)

	res := sampleResult()
	fl.LogRunStart(res.Root, rename.ModeApply, len(res.Candidates))
	for i, c := range res.Candidates {
		fl.LogOutcome(c, i, len(res.Candidates))
	}
	fl.LogSummary(res, 2*time.Second)
	require.NoError(t, fl.Close())

	data, err := os.ReadFile(fl.RunFile())
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "=== cleanfilenames run log ===")
	assert.Contains(t, out, "[INFO] Starting apply of /roms: 2 candidates")
	assert.Contains(t, out, "[DEBUG] [1/2] Renamed [file] /roms/Game (USA).nes -> Game.nes")
	assert.Contains(t, out, "[WARN] [2/2] Failed: /roms/Other (USA).nes -> /roms/Other.nes: target already exists on disk")
	assert.Contains(t, out, "Mode: apply")
	assert.Contains(t, out, "Failures:\n  - /roms/Other (USA).nes -> /roms/Other.nes: target already exists on disk")
	assert.Contains(t, out, "Completed 1 of 2 renames (1 error).")
}

func TestFileLoggerLevelFiltering(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "warn")
	require.NoError(t, err)

	fl.LogInfo("info message")
	fl.LogWarn("warn message")
	fl.LogError("error message")
	fl.LogOutcome(doneCandidate(), 0, 1)
	require.NoError(t, fl.Close())

	data, err := os.ReadFile(fl.RunFile())
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "info message")
	assert.NotContains(t, out, "Renamed")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestFileLoggerCloseTwice(t *testing.T) {
	fl, err := NewFileLogger(t.TempDir(), "info")
	require.NoError(t, err)
	require.NoError(t, fl.Close())
	assert.NoError(t, fl.Close())
	fl.LogInfo("after close is dropped")
}

func TestNewFileLoggerBadDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := NewFileLogger(filepath.Join(blocker, "logs"), "info")
	assert.ErrorContains(t, err, "failed to create log directory")
}
