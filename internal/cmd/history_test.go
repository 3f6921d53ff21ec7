package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/harrison/cleanfilenames/internal/journal"
	"github.com/harrison/cleanfilenames/internal/models"
	"github.com/harrison/cleanfilenames/internal/rename"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedRun records one run with a success and a failure in dbPath.
func seedRun(t *testing.T, dbPath string) *journal.Run {
	t.Helper()
	cands := []*models.Candidate{
		{OldPath: "/roms/Game (USA).nes", NewPath: "/roms/Game.nes", Type: models.TypeFile, Status: models.StatusDone},
		{OldPath: "/roms/B (USA).nes", NewPath: "/roms/B.nes", Type: models.TypeFile, Status: models.StatusError, Message: "target already exists on disk"},
	}
	run := journal.NewRun("/roms", "apply", `\s*\((?:USA)\)\s*`, cands, rename.Summarize(cands), time.Now().Add(-time.Second))

	store, err := journal.Open(dbPath)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.RecordRun(context.Background(), run))
	return run
}

func TestHistoryEmpty(t *testing.T) {
	setupHome(t)

	out, _, err := executeCommand(t, "", "history")
	require.NoError(t, err)
	assert.Equal(t, "No history recorded yet.\n", out)
}

func TestHistoryListAndShow(t *testing.T) {
	home := setupHome(t)
	run := seedRun(t, filepath.Join(home, "history.db"))

	out, _, err := executeCommand(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, run.ID[:8])
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "(1 error)")

	out, _, err = executeCommand(t, "", "history", "show", run.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "=== Run "+run.ID+" ===")
	assert.Contains(t, out, "Pattern: \\s*\\((?:USA)\\)\\s*")
	assert.Contains(t, out, "[file] /roms/Game (USA).nes -> /roms/Game.nes (done)\n")
	assert.Contains(t, out, "[file] /roms/B (USA).nes -> /roms/B.nes (error): target already exists on disk\n")
}

func TestHistoryShowUnknown(t *testing.T) {
	home := setupHome(t)
	seedRun(t, filepath.Join(home, "history.db"))

	_, _, err := executeCommand(t, "", "history", "show", "zzzz")
	assert.ErrorIs(t, err, journal.ErrRunNotFound)
}

func TestHistoryDbPathFlag(t *testing.T) {
	setupHome(t)
	dbPath := filepath.Join(t.TempDir(), "other.db")
	run := seedRun(t, dbPath)

	out, _, err := executeCommand(t, "", "history", "--db-path", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, run.ID[:8])
}

func TestHistoryDelete(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		deleted bool
	}{
		{name: "confirmed", stdin: "y\n", deleted: true},
		{name: "declined", stdin: "n\n", deleted: false},
		{name: "no input", stdin: "", deleted: false},
		{name: "yes flag", args: []string{"--yes"}, deleted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := setupHome(t)
			dbPath := filepath.Join(home, "history.db")
			run := seedRun(t, dbPath)

			args := append([]string{"history", "delete", run.ID}, tt.args...)
			out, _, err := executeCommand(t, tt.stdin, args...)
			require.NoError(t, err)

			store, err := journal.Open(dbPath)
			require.NoError(t, err)
			defer store.Close()
			_, getErr := store.GetRun(context.Background(), run.ID)

			if tt.deleted {
				assert.Contains(t, out, "Deleted run "+run.ID[:8])
				assert.ErrorIs(t, getErr, journal.ErrRunNotFound)
			} else {
				assert.Contains(t, out, "Operation cancelled.")
				assert.NoError(t, getErr)
			}
		})
	}
}
