// Package workdir locates the studio's data files.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// StoreFile is the name of the persisted studio document.
const StoreFile = "studio.json"

// Root returns the base directory for all studio files.
// The path is expanded at runtime to resolve to:
//
//	$HOME/Documents/Alkime/Studio
func Root() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, "Documents", "Alkime", "Studio"), nil
}

// Resolve returns dir, or Root when dir is empty.
func Resolve(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return Root()
}

// StorePath returns the store file inside dir.
func StorePath(dir string) string {
	return filepath.Join(dir, StoreFile)
}

// DownloadsPath returns the directory downloaded content is written to.
func DownloadsPath(dir string) string {
	return filepath.Join(dir, "downloads")
}

// Prep ensures dir exists.
func Prep(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create working directory %s: %w", dir, err)
	}

	return nil
}
