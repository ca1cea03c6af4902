package steam

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	textvdf "github.com/andygrunwald/vdf"

	"github.com/lobinuxsoft/shortcut-export/internal/logging"
)

// steamID64Base is the offset between a 64-bit SteamID and the 32-bit
// account id used for userdata directory names.
const steamID64Base = 76561197960265728

// UnknownAccount labels userdata directories with no known owner.
const UnknownAccount = "Unknown Account"

// Account describes the owner of a userdata directory.
type Account struct {
	UserID      string
	AccountName string
	PersonaName string
	SteamID64   string
}

// ListUserDirs returns the userdata subdirectories in lexicographic order.
func ListUserDirs(paths *Paths) ([]string, error) {
	userDataDir := paths.UserDataDir()

	entries, err := os.ReadDir(userDataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoUserData, userDataDir)
		}
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}

	if len(dirs) == 0 {
		return nil, ErrNoAccountsFound
	}

	sort.Strings(dirs)
	return dirs, nil
}

// ReadAccounts builds the userdata id to account map from loginusers.vdf and
// config.vdf. Either file may be missing or unreadable; when both describe the
// same directory, loginusers.vdf wins.
func ReadAccounts(paths *Paths, logger *slog.Logger) map[string]Account {
	log := logging.Component(logger, "accounts")
	accounts := make(map[string]Account)

	if login, err := readTextVDF(paths.LoginUsersPath()); err != nil {
		logMissing(log, paths.LoginUsersPath(), err)
	} else {
		mergeAccounts(accounts, loginUsersAccounts(login), log)
	}

	if cfg, err := readTextVDF(paths.ClientConfigPath()); err != nil {
		logMissing(log, paths.ClientConfigPath(), err)
	} else {
		mergeAccounts(accounts, clientConfigAccounts(cfg), log)
	}

	return accounts
}

// ResolveUserID returns the userdata directory owned by accountName.
// Names match case-insensitively; directories are tried in lexicographic
// order and the first match wins.
func ResolveUserID(paths *Paths, accountName string, logger *slog.Logger) (string, error) {
	log := logging.Component(logger, "accounts")

	dirs, err := ListUserDirs(paths)
	if err != nil {
		return "", err
	}

	accounts := ReadAccounts(paths, logger)

	for _, dir := range dirs {
		acc, ok := accounts[dir]
		if !ok || acc.AccountName == "" {
			log.Debug("userdata directory has no known account", "userId", dir, "label", UnknownAccount)
			continue
		}
		if strings.EqualFold(acc.AccountName, accountName) {
			log.Debug("resolved account", "account", accountName, "userId", dir)
			return dir, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrAccountNotFound, accountName)
}

func logMissing(log *slog.Logger, path string, err error) {
	if os.IsNotExist(err) {
		log.Warn("account metadata not found", "path", path)
		return
	}
	log.Error("failed to read account metadata", "path", path, "error", err)
}

func readTextVDF(path string) (map[string]interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := textvdf.NewParser(f).Parse()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// loginUsersAccounts reads users/<steamid64>/{AccountName,PersonaName}.
func loginUsersAccounts(doc map[string]interface{}) map[string]Account {
	result := make(map[string]Account)

	users, ok := lookupMap(doc, "users")
	if !ok {
		return result
	}

	for steamID, raw := range users {
		user, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		userID, ok := SteamID64ToUserID(steamID)
		if !ok {
			continue
		}
		result[userID] = Account{
			UserID:      userID,
			AccountName: lookupString(user, "AccountName"),
			PersonaName: lookupString(user, "PersonaName"),
			SteamID64:   steamID,
		}
	}

	return result
}

// clientConfigAccounts reads
// InstallConfigStore/Software/Valve/Steam/Accounts/<name>/SteamID.
func clientConfigAccounts(doc map[string]interface{}) map[string]Account {
	result := make(map[string]Account)

	node := doc
	for _, key := range []string{"InstallConfigStore", "Software", "Valve", "Steam", "Accounts"} {
		next, ok := lookupMap(node, key)
		if !ok {
			return result
		}
		node = next
	}

	for name, raw := range node {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		steamID := lookupString(entry, "SteamID")
		userID, ok := SteamID64ToUserID(steamID)
		if !ok {
			continue
		}
		result[userID] = Account{
			UserID:      userID,
			AccountName: name,
			SteamID64:   steamID,
		}
	}

	return result
}

// mergeAccounts adds src into dst. Existing records keep their names;
// disagreements are logged and otherwise ignored.
func mergeAccounts(dst, src map[string]Account, log *slog.Logger) {
	for userID, acc := range src {
		existing, ok := dst[userID]
		if !ok {
			dst[userID] = acc
			continue
		}

		if acc.AccountName != "" && existing.AccountName != "" && !strings.EqualFold(acc.AccountName, existing.AccountName) {
			log.Debug("conflicting account records", "userId", userID, "kept", existing.AccountName, "ignored", acc.AccountName)
		}
		if existing.AccountName == "" {
			existing.AccountName = acc.AccountName
		}
		if existing.PersonaName == "" {
			existing.PersonaName = acc.PersonaName
		}
		if existing.SteamID64 == "" {
			existing.SteamID64 = acc.SteamID64
		}
		dst[userID] = existing
	}
}

// SteamID64ToUserID converts a 64-bit SteamID to the userdata directory name.
func SteamID64ToUserID(steamID string) (string, bool) {
	id, err := strconv.ParseUint(steamID, 10, 64)
	if err != nil || id < steamID64Base {
		return "", false
	}
	return strconv.FormatUint(id-steamID64Base, 10), true
}

// lookupMap finds a nested map by case-insensitive key; Steam is not
// consistent about key casing ("Valve" vs "valve").
func lookupMap(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	if v, ok := m[key].(map[string]interface{}); ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			if child, ok := v.(map[string]interface{}); ok {
				return child, true
			}
		}
	}
	return nil, false
}

func lookupString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}
