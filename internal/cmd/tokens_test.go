package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/cleanfilenames/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensList(t *testing.T) {
	home := setupHome(t)
	writeConfig(t, home, "preset: minimal\ntokens: [Beta]\n")

	out, _, err := executeCommand(t, "", "tokens", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, config.PresetTokens("minimal"), lines[:len(lines)-1])
	assert.Equal(t, "Beta", lines[len(lines)-1])
}

func TestTokensListCustomRegex(t *testing.T) {
	home := setupHome(t)
	writeConfig(t, home, "regex: '\\s*\\[b\\]'\n")

	out, _, err := executeCommand(t, "", "tokens", "list")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Custom regex in use, tokens are ignored: \\s*\\[b\\]\n"))
}

func TestTokensPresets(t *testing.T) {
	setupHome(t)

	out, _, err := executeCommand(t, "", "tokens", "presets")
	require.NoError(t, err)

	presets, err := config.ListPresets()
	require.NoError(t, err)
	for _, p := range presets {
		assert.Contains(t, out, p.Name)
		assert.Contains(t, out, p.Description)
	}
}

func TestTokensScan(t *testing.T) {
	home := setupHome(t)
	writeConfig(t, home, "preset: \"\"\ntokens: [USA]\n")
	root := makeTree(t,
		"A (USA).nes",
		"B (USA).nes",
		"C (Proto).nes",
		"Set (Beta)/D (Proto).nes",
		".hidden (Secret).nes",
	)

	out, _, err := executeCommand(t, "", "tokens", "scan", root)
	require.NoError(t, err)

	assert.Contains(t, out, "Known tokens in use:\n  USA                  2\n")
	assert.Contains(t, out, "Unknown tags:\n  Proto                2\n")
	assert.Contains(t, out, "  Beta                 1\n")
	assert.NotContains(t, out, "Secret")
}

func TestTokensScanLimit(t *testing.T) {
	setupHome(t)
	root := makeTree(t, "A (x1).nes", "B (x2).nes", "C (x3).nes")

	out, _, err := executeCommand(t, "", "tokens", "scan", root, "--limit", "1", "--config", writeConfig(t, t.TempDir(), "preset: \"\"\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "x1")
	assert.NotContains(t, out, "x3")
	assert.Contains(t, out, "... and 2 more")
}

func TestTokensImport(t *testing.T) {
	home := setupHome(t)
	cfgPath := writeConfig(t, home, "preset: \"\"\ntokens: [USA]\n")

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("# regions\n(USA)\nEurope\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "b.yaml"), []byte("tokens: [Beta, Europe]\n"), 0644))

	out, _, err := executeCommand(t, "", "tokens", "import", src)
	require.NoError(t, err)

	assert.Contains(t, out, "Importing token files:\n")
	assert.Contains(t, out, "  [1/2] a.txt (2 tokens)\n")
	assert.Contains(t, out, "✓ Imported 2 new tokens from 2 files\n")
	assert.Contains(t, out, "Config written to: "+cfgPath)

	cfg, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"USA", "Europe", "Beta"}, cfg.Tokens)
}

func TestTokensImportNothingNew(t *testing.T) {
	home := setupHome(t)
	writeConfig(t, home, "preset: \"\"\ntokens: [USA]\n")
	src := filepath.Join(t.TempDir(), "t.txt")
	require.NoError(t, os.WriteFile(src, []byte("USA\n"), 0644))

	out, _, err := executeCommand(t, "", "tokens", "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, "All tokens are already configured.")
}

func TestTokensImportInvalidWritesNothing(t *testing.T) {
	home := setupHome(t)
	src := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(src, []byte("Good\nBad/Token\n"), 0644))

	_, stderr, err := executeCommand(t, "", "tokens", "import", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import aborted")
	assert.Contains(t, stderr, "Invalid tokens")
	assert.NoFileExists(t, filepath.Join(home, "config.yaml"))
}
