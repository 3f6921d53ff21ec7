package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the state directory.
const HomeEnv = "CLEANFILENAMES_HOME"

// GetHome returns the directory holding the config file, history database
// and lock files.
// Priority order:
//  1. CLEANFILENAMES_HOME environment variable (if set)
//  2. $XDG_CONFIG_HOME/cleanfilenames
//  3. ~/.config/cleanfilenames
//
// The directory is not created here; writers create it on demand.
func GetHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cleanfilenames"), nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(userHome, ".config", "cleanfilenames"), nil
}

// DefaultConfigPath returns $HOME/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "config.yaml"), nil
}

// DefaultHistoryPath returns the default journal database path.
func DefaultHistoryPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "history.db"), nil
}

// RootLockPath returns the lock file guarding renames under root. Lock files
// live in the state directory so the scanned tree is never touched.
func RootLockPath(root string) (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(filepath.Clean(root)))
	return filepath.Join(home, "locks", hex.EncodeToString(sum[:8])+".lock"), nil
}
