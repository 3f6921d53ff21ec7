package rename

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/harrison/cleanfilenames/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTargetRejects(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "empty", target: ""},
		{name: "blank", target: "   "},
		{name: "dot", target: "."},
		{name: "dot dot", target: ".."},
		{name: "slash", target: "sub/Game.nes"},
		{name: "separator", target: "sub" + string(filepath.Separator) + "Game.nes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &models.Candidate{
				ID:      "/roms/Game (USA).nes",
				OldPath: "/roms/Game (USA).nes",
				NewPath: "/roms/Game.nes",
				Target:  "Game.nes",
				Status:  models.StatusError,
				Message: "another item already targets this name",
			}
			before := *c

			err := SetTarget(c, tt.target)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "want ValidationError, got %v", err)
			assert.Equal(t, before, *c, "rejected edit must not change the candidate")
		})
	}
}

// A manual edit that empties a conflicting target is rejected and nothing
// on disk is touched.
func TestSetTargetEmptyOnConflict(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "Game (USA).nes", "Game (Europe).nes")
	before := listTree(t, root)

	cands := collectResolved(t, root, testOptions("USA", "Europe"))
	c := byName(cands)["Game (USA).nes"]
	snapshot := *c

	require.Error(t, SetTarget(c, ""))
	assert.Equal(t, snapshot, *c)
	assert.Equal(t, before, listTree(t, root))
}

func TestSetTargetAccepts(t *testing.T) {
	c := &models.Candidate{
		ID:      "/roms/Game (USA).nes",
		OldPath: "/roms/Game (USA).nes",
		NewPath: "/roms/Game.nes",
		Target:  "Game.nes",
		Status:  models.StatusError,
		Message: "target already exists on disk",
		Err:     &CollisionError{Kind: TargetExists},
	}

	require.NoError(t, SetTarget(c, "Game (US).nes"))
	assert.True(t, c.Edited)
	assert.Equal(t, "Game (US).nes", c.Override)
	assert.Equal(t, filepath.Join("/roms", "Game (US).nes"), c.NewPath)
	assert.Equal(t, models.StatusPending, c.Status)
	assert.Empty(t, c.Message)
	assert.Nil(t, c.Err)

	ClearTarget(c)
	assert.False(t, c.Edited)
	assert.Equal(t, filepath.Join("/roms", "Game.nes"), c.NewPath)
}

func TestSetTargetDoneCandidate(t *testing.T) {
	c := &models.Candidate{OldPath: "/roms/a.nes", NewPath: "/roms/b.nes", Status: models.StatusDone}
	err := SetTarget(c, "c.nes")
	require.Error(t, err)
	assert.Equal(t, "/roms/b.nes", c.NewPath)
}
