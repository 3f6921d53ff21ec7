package rename

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/harrison/cleanfilenames/internal/fileutil"
	"github.com/harrison/cleanfilenames/internal/models"
)

// Collect scans root and returns one candidate for every entry whose name
// changes under Normalize. Nothing on disk is modified.
//
// The returned slice is in apply order: directory candidates first, sorted
// by descending path length (so a directory always precedes its ancestors),
// followed by file candidates in walk order. The order is computed once here
// and is not re-sorted later.
//
// Entries that cannot be read are returned as Error candidates carrying a
// *ScanError, with NewPath equal to OldPath.
func Collect(root string, opts Options) ([]*models.Candidate, error) {
	absRoot, err := checkRoot(root)
	if err != nil {
		return nil, err
	}

	scan, err := fileutil.ScanTree(absRoot, fileutil.ScanOptions{})
	if err != nil {
		return nil, &PathError{Path: absRoot, Message: "root is not accessible", Err: err}
	}

	p := opts.pattern()
	var dirs, files []*models.Candidate

	if opts.RenameRoot {
		if c := newCandidate(scan.Root, models.TypeDirectory, p); c != nil {
			dirs = append(dirs, c)
		}
	}

	if opts.RenameDirectories {
		for _, d := range scan.Dirs {
			if c := newCandidate(d.Path, models.TypeDirectory, p); c != nil {
				dirs = append(dirs, c)
			}
		}
	}

	for _, f := range scan.Files {
		if c := newCandidate(f.Path, models.TypeFile, p); c != nil {
			files = append(files, c)
		}
	}

	// Deepest first. Any ancestor path is a strict prefix and therefore
	// shorter, so descending length is a safe proxy for depth.
	sort.SliceStable(dirs, func(i, j int) bool {
		return dirs[i].Depth > dirs[j].Depth
	})

	out := make([]*models.Candidate, 0, len(dirs)+len(files)+len(scan.Errors))
	out = append(out, dirs...)
	out = append(out, files...)

	byID := make(map[string]*models.Candidate, len(out))
	for _, c := range out {
		byID[c.ID] = c
	}
	for _, se := range scan.Errors {
		// A directory whose listing failed can still be renamed itself;
		// keep its candidate and note why its contents were skipped.
		if c, ok := byID[se.Path]; ok {
			c.Message = (&ScanError{Path: se.Path, Err: se.Err}).Error()
			continue
		}
		out = append(out, unreadableCandidate(se))
	}
	return out, nil
}

func checkRoot(root string) (string, error) {
	if root == "" {
		return "", &PathError{Path: root, Message: "path is empty"}
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &PathError{Path: root, Message: "cannot resolve path", Err: err}
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &PathError{Path: abs, Message: "path not found", Err: err}
		}
		return "", &PathError{Path: abs, Message: "cannot access path", Err: err}
	}
	if !info.IsDir() {
		return "", &PathError{Path: abs, Message: "not a directory"}
	}
	return abs, nil
}

// newCandidate returns a Pending candidate when path's basename changes
// under p, and nil otherwise.
func newCandidate(path string, typ models.ItemType, p *regexp.Regexp) *models.Candidate {
	name := filepath.Base(path)
	target := Normalize(name, p)
	if target == name {
		return nil
	}
	return &models.Candidate{
		ID:      path,
		OldPath: path,
		NewPath: joinTarget(path, target),
		Target:  target,
		Type:    typ,
		Depth:   len(path),
		Status:  models.StatusPending,
	}
}

func unreadableCandidate(se *fileutil.EntryError) *models.Candidate {
	typ := models.TypeFile
	if info, err := os.Lstat(se.Path); err == nil && info.IsDir() {
		typ = models.TypeDirectory
	}
	c := &models.Candidate{
		ID:      se.Path,
		OldPath: se.Path,
		NewPath: se.Path,
		Target:  filepath.Base(se.Path),
		Type:    typ,
		Depth:   len(se.Path),
	}
	c.Fail(&ScanError{Path: se.Path, Err: se.Err})
	return c
}

// joinTarget builds the new path from old's parent and a basename. An empty
// target keeps the parent so the resolver can reject it by name.
func joinTarget(old, target string) string {
	return filepath.Join(filepath.Dir(old), target)
}
