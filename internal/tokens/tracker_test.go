package tokens

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerKnownTokens(t *testing.T) {
	assert.Equal(t, []string{"USA", "EU", "JP"}, NewTracker([]string{"USA", "EU", "JP"}).Known())
	assert.Empty(t, NewTracker(nil).Known())
	assert.Equal(t, []string{"USA"}, NewTracker([]string{" USA ", ""}).Known())
}

func TestTrackerObserve(t *testing.T) {
	tr := NewTracker([]string{"USA", "EU"})
	tr.Observe("Game (USA).zip", "/test/Game (USA).zip")
	tr.Observe("Other (USA) (Beta).zip", "/test/Other (USA) (Beta).zip")
	tr.Observe("Thing (Proto).zip", "/test/Thing (Proto).zip")
	tr.Observe("Thing 2 (Beta).zip", "/test/Thing 2 (Beta).zip")
	tr.Observe("", "/ignored")
	tr.Observe("Empty ( ).zip", "/test/Empty ( ).zip")

	assert.Equal(t, []Usage{{Token: "USA", Count: 2}, {Token: "EU", Count: 0}}, tr.Usage())

	sugg := tr.Suggestions()
	require.Len(t, sugg, 2)
	assert.Equal(t, "Beta", sugg[0].Token)
	assert.Equal(t, 2, sugg[0].Count)
	assert.Equal(t, []string{"/test/Other (USA) (Beta).zip", "/test/Thing 2 (Beta).zip"}, sugg[0].Samples)
	assert.Equal(t, "Proto", sugg[1].Token)
}

func TestTrackerSamplesCapped(t *testing.T) {
	tr := NewTracker(nil)
	for i := 0; i < MaxSamples+2; i++ {
		p := filepath.Join("/test", string(rune('a'+i))+" (Beta).zip")
		tr.Observe(filepath.Base(p), p)
	}
	tr.Observe("a (Beta).zip", filepath.Join("/test", "a (Beta).zip"))

	sugg := tr.Suggestions()
	require.Len(t, sugg, 1)
	assert.Equal(t, MaxSamples+3, sugg[0].Count)
	assert.Len(t, sugg[0].Samples, MaxSamples)
}

func TestTrackerDuplicates(t *testing.T) {
	tr := NewTracker([]string{"USA", "EU", "USA"})
	assert.Equal(t, map[string]int{"USA": 2}, tr.Duplicates())
}

func TestTrackerSortedSuggestions(t *testing.T) {
	tr := NewTracker(nil)
	tr.Observe("a (Disc 10) (Disc 2).bin", "/a")
	tr.Observe("b (Proto).bin", "/b")
	tr.Observe("c (Proto).bin", "/c")

	sugg := tr.SortedSuggestions()
	require.Len(t, sugg, 3)
	assert.Equal(t, []string{"Proto", "Disc 2", "Disc 10"}, []string{sugg[0].Token, sugg[1].Token, sugg[2].Token})
}

func TestTrackerScanTree(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Roms (USA)"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".hidden (Beta)"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Roms (USA)", "Game (Beta).nes"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden (Beta)", "x (Beta).nes"), nil, 0o644))

	tr := NewTracker([]string{"USA"})
	errs, err := tr.ScanTree(root)
	require.NoError(t, err)
	assert.Empty(t, errs)

	assert.Equal(t, []Usage{{Token: "USA", Count: 1}}, tr.Usage())
	sugg := tr.Suggestions()
	require.Len(t, sugg, 1)
	assert.Equal(t, 1, sugg[0].Count, "hidden entries are skipped")

	_, err = tr.ScanTree(filepath.Join(root, "missing"))
	assert.Error(t, err)
}
