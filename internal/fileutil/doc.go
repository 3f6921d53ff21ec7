// Package fileutil walks directory trees for the rename pipeline and the
// token scanner.
//
// ScanTree visits every entry below a root in lexical order and splits the
// results into files and directories. It never modifies the filesystem.
// Problems with individual entries (a directory that cannot be listed, an
// entry that vanished between listing and lstat) are collected in
// ScanResult.Errors and the walk continues; only a root that does not exist,
// is not a directory, or cannot be read at all is returned as an error.
//
// Symlinks are reported as files and never followed, so a renamed link
// renames the link itself.
//
// Basic usage:
//
//	result, err := fileutil.ScanTree("/roms", fileutil.ScanOptions{})
//	if err != nil {
//	    return err
//	}
//	for _, f := range result.Files {
//	    fmt.Println(f.Path)
//	}
package fileutil
