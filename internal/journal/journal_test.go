package journal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harrison/cleanfilenames/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	// A regular file where a directory is expected fails even for root.
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	tests := []struct {
		name    string
		dbPath  string
		wantErr bool
	}{
		{name: "file database", dbPath: filepath.Join(t.TempDir(), "history.db")},
		{name: "in-memory database", dbPath: ":memory:"},
		{name: "creates parent directories", dbPath: filepath.Join(t.TempDir(), "nested", "dir", "history.db")},
		{name: "invalid path", dbPath: filepath.Join(blocker, "deep", "history.db"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(tt.dbPath)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer store.Close()

			version, err := store.LatestVersion(context.Background())
			require.NoError(t, err)
			assert.Equal(t, len(migrations), version)
			assert.Equal(t, tt.dbPath, store.Path())
		})
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.ApplyMigrations(context.Background()))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	version, err := store.LatestVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(migrations), version)
}

func sampleRun(root string, started time.Time) *Run {
	cands := []*models.Candidate{
		{OldPath: root + "/Roms (USA)", NewPath: root + "/Roms", Type: models.TypeDirectory, Status: models.StatusDone},
		{OldPath: root + "/Roms/Game (USA).nes", NewPath: root + "/Roms/Game.nes", Type: models.TypeFile, Status: models.StatusDone},
		{OldPath: root + "/A (USA).nes", NewPath: root + "/A.nes", Type: models.TypeFile, Status: models.StatusError, Message: "target already exists on disk"},
	}
	sum := models.Summary{Total: 3, Files: 2, Directories: 1, Done: 2, Errors: 1}
	return NewRun(root, "apply", `\s*\((?:USA)\)\s*`, cands, sum, started)
}

func TestRecordAndGetRun(t *testing.T) {
	ctx := context.Background()
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	run := sampleRun("/data/roms", time.Now().Add(-time.Second))
	require.NotEmpty(t, run.ID)
	require.NoError(t, store.RecordRun(ctx, run))

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "/data/roms", got.Root)
	assert.Equal(t, "apply", got.Mode)
	assert.Equal(t, run.Pattern, got.Pattern)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.Done)
	assert.Equal(t, 1, got.Errors)
	assert.WithinDuration(t, run.StartedAt, got.StartedAt, time.Millisecond)

	require.Len(t, got.Entries, 3)
	assert.Equal(t, run.Entries, got.Entries)
	assert.Equal(t, models.StatusError, got.Entries[2].Status)
	assert.Equal(t, "target already exists on disk", got.Entries[2].Message)

	byPrefix, err := store.GetRun(ctx, run.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, run.ID, byPrefix.ID)
}

func TestGetRunNotFound(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.GetRun(context.Background(), "deadbeef")
	assert.True(t, errors.Is(err, ErrRunNotFound))

	_, err = store.GetRun(context.Background(), "")
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestGetRunAmbiguousPrefix(t *testing.T) {
	ctx := context.Background()
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	a := sampleRun("/a", time.Now())
	a.ID = "abc-1"
	b := sampleRun("/b", time.Now())
	b.ID = "abc-2"
	require.NoError(t, store.RecordRun(ctx, a))
	require.NoError(t, store.RecordRun(ctx, b))

	_, err = store.GetRun(ctx, "abc")
	assert.ErrorContains(t, err, "ambiguous")

	got, err := store.GetRun(ctx, "abc-2")
	require.NoError(t, err)
	assert.Equal(t, "/b", got.Root)
}

func TestListRuns(t *testing.T) {
	ctx := context.Background()
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	base := time.Now().Add(-time.Hour)
	for i, root := range []string{"/one", "/two", "/three"} {
		require.NoError(t, store.RecordRun(ctx, sampleRun(root, base.Add(time.Duration(i)*time.Minute))))
	}

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"/three", "/two", "/one"}, []string{runs[0].Root, runs[1].Root, runs[2].Root})
	assert.Nil(t, runs[0].Entries, "entries are only loaded by GetRun")

	limited, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDeleteRun(t *testing.T) {
	ctx := context.Background()
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	run := sampleRun("/data", time.Now())
	require.NoError(t, store.RecordRun(ctx, run))
	require.NoError(t, store.DeleteRun(ctx, run.ID))

	_, err = store.GetRun(ctx, run.ID)
	assert.True(t, errors.Is(err, ErrRunNotFound))

	var n int
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n))
	assert.Zero(t, n, "entries cascade with their run")

	assert.True(t, errors.Is(store.DeleteRun(ctx, run.ID), ErrRunNotFound))
}
