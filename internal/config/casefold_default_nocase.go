//go:build darwin || windows

package config

// defaultCaseInsensitive is the collision-key default for platforms whose
// default filesystems (APFS, NTFS) compare names case-insensitively.
const defaultCaseInsensitive = true
