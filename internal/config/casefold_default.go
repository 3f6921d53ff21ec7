//go:build !darwin && !windows

package config

// defaultCaseInsensitive is the collision-key default for filesystems that
// are case-sensitive out of the box.
const defaultCaseInsensitive = false
