package rename

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/harrison/cleanfilenames/internal/config"
	"github.com/harrison/cleanfilenames/internal/models"
	"github.com/stretchr/testify/require"
)

// testOptions builds Options for a token list with directories and the
// root renamed, collisions reported as errors.
func testOptions(tokens ...string) Options {
	return Options{
		Pattern:           regexp.MustCompile(config.BuildRegex(tokens)),
		RenameDirectories: true,
		RenameRoot:        true,
	}
}

// makeTree creates the given entries under root. A trailing "/" marks a
// directory; everything else is written as a small file.
func makeTree(t *testing.T, root string, entries ...string) {
	t.Helper()
	for _, e := range entries {
		p := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(e, "/")))
		if strings.HasSuffix(e, "/") {
			require.NoError(t, os.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(e), 0o644))
	}
}

// listTree returns every path under root, relative and slash-separated.
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			rel += "/"
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(out)
	return out
}

// byName indexes candidates by their original basename.
func byName(cands []*models.Candidate) map[string]*models.Candidate {
	m := make(map[string]*models.Candidate, len(cands))
	for _, c := range cands {
		m[filepath.Base(c.ID)] = c
	}
	return m
}

func collectResolved(t *testing.T, root string, opts Options) []*models.Candidate {
	t.Helper()
	cands, err := Collect(root, opts)
	require.NoError(t, err)
	return Resolve(cands, opts)
}
