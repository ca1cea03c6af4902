// Package pathutil provides shared path utilities.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands ~ to the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Abs expands ~ and returns the absolute form of path.
// An empty path stays empty.
func Abs(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return filepath.Abs(ExpandHome(path))
}

// Quote wraps a path in double quotes as Steam stores executable paths.
// Already quoted paths are returned unchanged.
func Quote(path string) string {
	if len(path) >= 2 && strings.HasPrefix(path, "\"") && strings.HasSuffix(path, "\"") {
		return path
	}
	return "\"" + path + "\""
}
