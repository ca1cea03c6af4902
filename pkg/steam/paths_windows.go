//go:build windows

package steam

import (
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

// getBaseDir returns the Steam base directory on Windows using the registry.
func getBaseDir() (string, error) {
	// The per-user key is written by the running client and is the most accurate.
	if path, err := readRegistryString(registry.CURRENT_USER, `SOFTWARE\Valve\Steam`, "SteamPath"); err == nil {
		return filepath.Clean(path), nil
	}

	// Try 64-bit registry first
	if path, err := readRegistryString(registry.LOCAL_MACHINE, `SOFTWARE\Wow6432Node\Valve\Steam`, "InstallPath"); err == nil {
		return path, nil
	}

	// Fall back to 32-bit registry
	if path, err := readRegistryString(registry.LOCAL_MACHINE, `SOFTWARE\Valve\Steam`, "InstallPath"); err == nil {
		return path, nil
	}

	return "", ErrSteamNotFound
}

func readRegistryString(root registry.Key, path, name string) (string, error) {
	key, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer key.Close()

	value, _, err := key.GetStringValue(name)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", ErrSteamNotFound
	}
	return value, nil
}
