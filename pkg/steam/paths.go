// Package steam provides local Steam integration for non-Steam shortcuts:
// locating the Steam data root, resolving accounts to userdata directories
// and reading and writing shortcuts.vdf.
package steam

import (
	"errors"
	"os"
	"path/filepath"
)

// Common errors for Steam operations.
var (
	ErrSteamNotFound     = errors.New("steam installation not found")
	ErrNoUserData        = errors.New("steam userdata directory not found")
	ErrNoAccountsFound   = errors.New("no steam users found in userdata directory")
	ErrAccountNotFound   = errors.New("steam account not found")
	ErrShortcutsNotFound = errors.New("shortcuts.vdf not found")
)

// Paths provides access to Steam directory paths.
type Paths struct {
	baseDir string
}

// NewPaths creates a new Paths instance with auto-detected Steam directory.
func NewPaths() (*Paths, error) {
	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}
	return &Paths{baseDir: baseDir}, nil
}

// NewPathsWithBase creates a new Paths instance with a custom base directory.
func NewPathsWithBase(baseDir string) *Paths {
	return &Paths{baseDir: baseDir}
}

// BaseDir returns the Steam base directory.
func (p *Paths) BaseDir() string {
	return p.baseDir
}

// UserDataDir returns the userdata directory.
func (p *Paths) UserDataDir() string {
	return filepath.Join(p.baseDir, "userdata")
}

// UserDir returns the directory for a specific user.
func (p *Paths) UserDir(userID string) string {
	return filepath.Join(p.UserDataDir(), userID)
}

// ConfigDir returns the config directory for a user.
func (p *Paths) ConfigDir(userID string) string {
	return filepath.Join(p.UserDir(userID), "config")
}

// ShortcutsPath returns the path to shortcuts.vdf for a user.
func (p *Paths) ShortcutsPath(userID string) string {
	return filepath.Join(p.ConfigDir(userID), "shortcuts.vdf")
}

// HasShortcuts returns true if the user has a shortcuts.vdf file.
func (p *Paths) HasShortcuts(userID string) bool {
	_, err := os.Stat(p.ShortcutsPath(userID))
	return err == nil
}

// LoginUsersPath returns the path to the client's loginusers.vdf.
func (p *Paths) LoginUsersPath() string {
	return filepath.Join(p.baseDir, "config", "loginusers.vdf")
}

// ClientConfigPath returns the path to the client's config.vdf.
func (p *Paths) ClientConfigPath() string {
	return filepath.Join(p.baseDir, "config", "config.vdf")
}
