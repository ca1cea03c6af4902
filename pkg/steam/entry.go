package steam

import (
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lobinuxsoft/shortcut-export/internal/pathutil"
	"github.com/lobinuxsoft/shortcut-export/pkg/vdf"
)

// Entry builder errors.
var (
	ErrInvalidArgument  = errors.New("invalid shortcut argument")
	ErrLauncherNotFound = errors.New("launcher path does not exist")
)

// DefaultTag is the collection tag given to every exported shortcut.
const DefaultTag = "Launcher"

// Shortcut is a single non-Steam game entry as written to shortcuts.vdf.
type Shortcut struct {
	AppName            string
	Exe                string
	StartDir           string
	Icon               string
	ShortcutPath       string
	LaunchOptions      string
	IsHidden           bool
	AllowDesktopConfig bool
	AllowOverlay       bool
	OpenVR             bool
	Devkit             bool
	DevkitGameID       string
	LastPlayTime       int32
	Tags               []string
}

// NewShortcut builds the entry that launches appName through launcherPath and
// is displayed as displayName. Callers pass appName as displayName when no
// override is configured.
func NewShortcut(appName, launcherPath, displayName string) (Shortcut, error) {
	if appName == "" || launcherPath == "" || displayName == "" {
		return Shortcut{}, fmt.Errorf("%w: app name, launcher path and display name cannot be empty", ErrInvalidArgument)
	}

	if _, err := os.Stat(launcherPath); err != nil {
		return Shortcut{}, fmt.Errorf("%w: %s", ErrLauncherNotFound, launcherPath)
	}

	return Shortcut{
		AppName:            displayName,
		Exe:                pathutil.Quote(launcherPath),
		StartDir:           filepath.Dir(launcherPath),
		LaunchOptions:      `-Game "` + appName + `"`,
		AllowDesktopConfig: true,
		AllowOverlay:       true,
		Tags:               []string{DefaultTag},
	}, nil
}

// AppID returns the id Steam derives for this shortcut. Grid artwork for the
// shortcut lives under userdata/<id>/config/grid/<AppID>*.
func (s Shortcut) AppID() uint32 {
	return GenerateAppID(s.Exe, s.AppName)
}

// GenerateAppID generates a Steam shortcut app ID from executable path and name.
// This matches Steam's algorithm for non-Steam game shortcuts: CRC32 of
// (exe + name) with the top bit set.
func GenerateAppID(exe, name string) uint32 {
	return crc32.ChecksumIEEE([]byte(exe+name)) | 0x80000000
}

// Object converts the shortcut to its shortcuts.vdf record. Field names and
// order follow what the Steam client writes.
func (s Shortcut) Object() vdf.Object {
	tags := vdf.Object{}
	for i, tag := range s.Tags {
		tags = append(tags, vdf.Field{Key: strconv.Itoa(i), Value: tag})
	}

	return vdf.Object{
		{Key: "appname", Value: s.AppName},
		{Key: "exe", Value: s.Exe},
		{Key: "StartDir", Value: s.StartDir},
		{Key: "icon", Value: s.Icon},
		{Key: "ShortcutPath", Value: s.ShortcutPath},
		{Key: "LaunchOptions", Value: s.LaunchOptions},
		{Key: "IsHidden", Value: boolInt(s.IsHidden)},
		{Key: "AllowDesktopConfig", Value: boolInt(s.AllowDesktopConfig)},
		{Key: "AllowOverlay", Value: boolInt(s.AllowOverlay)},
		{Key: "OpenVR", Value: boolInt(s.OpenVR)},
		{Key: "Devkit", Value: boolInt(s.Devkit)},
		{Key: "DevkitGameID", Value: s.DevkitGameID},
		{Key: "LastPlayTime", Value: s.LastPlayTime},
		{Key: "tags", Value: tags},
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
