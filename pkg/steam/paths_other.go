//go:build !windows

package steam

import (
	"os"
	"path/filepath"
	"runtime"
)

// getBaseDir returns the Steam base directory on Linux/Unix systems.
func getBaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	for _, steamDir := range candidateDirs(home, runtime.GOOS) {
		if info, err := os.Stat(steamDir); err == nil && info.IsDir() {
			return steamDir, nil
		}
	}

	return "", ErrSteamNotFound
}

// candidateDirs lists known Steam locations in lookup order.
func candidateDirs(home, goos string) []string {
	if goos == "darwin" {
		return []string{filepath.Join(home, "Library", "Application Support", "Steam")}
	}

	return []string{
		// Primary location: ~/.steam/steam
		filepath.Join(home, ".steam", "steam"),
		// Fallback: ~/.local/share/Steam
		filepath.Join(home, ".local", "share", "Steam"),
		// Flatpak location
		filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".steam", "steam"),
	}
}
