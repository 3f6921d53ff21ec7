package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/cleanfilenames/internal/models"
)

// pathKeyer maps target paths to comparison keys and answers "is this path
// already taken on disk" questions, caching directory listings for the
// case-insensitive check.
type pathKeyer struct {
	caseInsensitive bool
	listings        map[string][]string
}

func newPathKeyer(caseInsensitive bool) *pathKeyer {
	return &pathKeyer{
		caseInsensitive: caseInsensitive,
		listings:        make(map[string][]string),
	}
}

// key returns the comparison key for path.
func (k *pathKeyer) key(path string) string {
	path = filepath.Clean(path)
	if k.caseInsensitive {
		return strings.ToLower(path)
	}
	return path
}

// occupied reports whether target exists on disk as an entry other than
// old. With case folding, a sibling whose name differs only in case counts.
func (k *pathKeyer) occupied(target, old string) bool {
	if info, err := os.Lstat(target); err == nil {
		if oldInfo, err := os.Lstat(old); err == nil && os.SameFile(info, oldInfo) {
			return false
		}
		return true
	}
	if !k.caseInsensitive {
		return false
	}

	dir := filepath.Dir(target)
	want := strings.ToLower(filepath.Base(target))
	self := filepath.Base(old)
	sameDir := filepath.Dir(old) == dir
	for _, name := range k.list(dir) {
		if sameDir && name == self {
			continue
		}
		if strings.ToLower(name) == want {
			return true
		}
	}
	return false
}

func (k *pathKeyer) list(dir string) []string {
	if names, ok := k.listings[dir]; ok {
		return names
	}
	var names []string
	if entries, err := os.ReadDir(dir); err == nil {
		names = make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
	}
	k.listings[dir] = names
	return names
}

// forget drops the cached listing of dir after its contents changed.
func (k *pathKeyer) forget(dir string) {
	delete(k.listings, dir)
}

// withSuffix inserts " (n)" into path's basename: before the extension for
// files, at the end for directories and extension-only names like ".nfo".
func withSuffix(path string, n int, typ models.ItemType) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if typ == models.TypeFile {
		ext := filepath.Ext(base)
		if stem := strings.TrimSuffix(base, ext); stem != "" && ext != "" {
			return filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		}
	}
	return filepath.Join(dir, fmt.Sprintf("%s (%d)", base, n))
}

// remapTable records directories renamed during an apply pass.
type remapTable struct {
	entries map[string]string
}

func newRemapTable() *remapTable {
	return &remapTable{entries: make(map[string]string)}
}

func (r *remapTable) add(oldDir, newDir string) {
	r.entries[filepath.Clean(oldDir)] = filepath.Clean(newDir)
}

// rewrite replaces the longest renamed ancestor of path with its new
// location, repeating until no recorded ancestor remains. Several ancestors
// of one path can have been renamed in the same pass.
func (r *remapTable) rewrite(path string) string {
	if len(r.entries) == 0 {
		return path
	}
	for i := 0; i <= len(r.entries); i++ {
		best := ""
		for old := range r.entries {
			if len(old) > len(best) && isAncestor(old, path) {
				best = old
			}
		}
		if best == "" {
			return path
		}
		path = r.entries[best] + path[len(best):]
	}
	return path
}

// isAncestor reports whether dir is a strict path-prefix of path.
func isAncestor(dir, path string) bool {
	if len(path) <= len(dir) || !strings.HasPrefix(path, dir) {
		return false
	}
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return true
	}
	return path[len(dir)] == filepath.Separator
}
