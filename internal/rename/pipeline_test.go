package rename

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/harrison/cleanfilenames/internal/config"
	"github.com/harrison/cleanfilenames/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunModes(t *testing.T) {
	tests := []struct {
		name       string
		mode       Mode
		wantStatus models.Status
		wantTree   []string
	}{
		{name: "preview", mode: ModePreview, wantStatus: models.StatusPending, wantTree: []string{"Roms (USA)/", "Roms (USA)/Game (USA).nes"}},
		{name: "dry run", mode: ModeDryRun, wantStatus: models.StatusDoneDryRun, wantTree: []string{"Roms (USA)/", "Roms (USA)/Game (USA).nes"}},
		{name: "apply", mode: ModeApply, wantStatus: models.StatusDone, wantTree: []string{"Roms/", "Roms/Game.nes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			makeTree(t, root, "Roms (USA)/Game (USA).nes")

			res, err := Run(root, testOptions("USA"), tt.mode, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.mode, res.Mode)
			assert.Equal(t, filepath.Clean(root), res.Root)
			require.Len(t, res.Candidates, 2)
			for _, c := range res.Candidates {
				assert.Equal(t, tt.wantStatus, c.Status)
			}
			assert.False(t, res.HasErrors())
			assert.Equal(t, tt.wantTree, listTree(t, root))
		})
	}
}

func TestRunPathError(t *testing.T) {
	_, err := Run(filepath.Join(t.TempDir(), "missing"), testOptions("USA"), ModeApply, nil)
	var pathErr *PathError
	assert.True(t, errors.As(err, &pathErr))
}

func TestRunFromConfig(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "Game (USA).nes", "Game (Europe).nes")

	cfg := config.DefaultConfig()
	cfg.Preset = ""
	cfg.Tokens = []string{"USA", "Europe"}
	opts, err := NewOptions(cfg)
	require.NoError(t, err)

	res, err := Run(root, opts, ModeApply, nil)
	require.NoError(t, err)
	assert.True(t, res.HasErrors())
	assert.Len(t, res.Failed(), 2)
	assert.Equal(t, "Completed 0 of 2 renames (2 errors).", res.Summary.String())
}

func TestNewOptionsBadPattern(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Regex = `(unclosed`
	_, err := NewOptions(cfg)

	var cfgErr *config.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "regex", cfgErr.Field)
}

func TestResultFinalRoot(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		want string
	}{
		{name: "preview keeps root", mode: ModePreview, want: "Incoming (USA)"},
		{name: "dry run keeps root", mode: ModeDryRun, want: "Incoming (USA)"},
		{name: "apply follows rename", mode: ModeApply, want: "Incoming"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := t.TempDir()
			root := filepath.Join(parent, "Incoming (USA)")
			makeTree(t, root, "Game (USA).nes")

			res, err := Run(root, testOptions("USA"), tt.mode, nil)
			require.NoError(t, err)

			assert.Equal(t, root, res.Root)
			assert.Equal(t, filepath.Join(parent, tt.want), res.FinalRoot())
			assert.DirExists(t, res.FinalRoot())
		})
	}
}
