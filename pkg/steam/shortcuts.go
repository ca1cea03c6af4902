package steam

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/text/cases"

	"github.com/lobinuxsoft/shortcut-export/internal/logging"
	"github.com/lobinuxsoft/shortcut-export/pkg/vdf"
)

// ErrMalformedShortcuts is returned when shortcuts.vdf decodes but does not
// have the expected layout.
var ErrMalformedShortcuts = errors.New("malformed shortcuts.vdf")

const shortcutsRootKey = "shortcuts"

// appNameKeys are the field names Steam has used for the display name.
var appNameKeys = []string{"appname", "AppName"}

// Shortcuts is the in-memory form of a shortcuts.vdf file. Records read from
// disk are kept verbatim so rewriting the file preserves fields this package
// does not know about.
type Shortcuts struct {
	doc  vdf.Object
	root vdf.Object
}

// NewShortcuts returns an empty store.
func NewShortcuts() *Shortcuts {
	return &Shortcuts{root: vdf.Object{}}
}

// ParseShortcuts decodes shortcuts.vdf content.
// A document without a shortcuts root is treated as empty.
func ParseShortcuts(data []byte) (*Shortcuts, error) {
	doc, err := vdf.Decode(data)
	if err != nil {
		return nil, err
	}

	raw, ok := doc.Get(shortcutsRootKey)
	if !ok {
		return &Shortcuts{doc: doc, root: vdf.Object{}}, nil
	}
	root, ok := raw.(vdf.Object)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, not an object", ErrMalformedShortcuts, shortcutsRootKey, raw)
	}

	return &Shortcuts{doc: doc, root: root}, nil
}

// ReadShortcuts loads shortcuts.vdf from path.
func ReadShortcuts(path string) (*Shortcuts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrShortcutsNotFound, path)
		}
		return nil, fmt.Errorf("failed to read shortcuts file: %w", err)
	}

	sc, err := ParseShortcuts(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse shortcuts file %s: %w", path, err)
	}
	return sc, nil
}

// LoadShortcuts loads shortcuts.vdf, falling back to an empty store when the
// file is missing or cannot be decoded. A decode failure is logged as a
// warning because the next Save will replace the unreadable content.
func LoadShortcuts(path string, logger *slog.Logger) *Shortcuts {
	log := logging.Component(logger, "shortcuts")

	sc, err := ReadShortcuts(path)
	switch {
	case err == nil:
		return sc
	case errors.Is(err, ErrShortcutsNotFound):
		log.Debug("no shortcuts.vdf found, starting empty", "path", path)
	default:
		log.Warn("unreadable shortcuts.vdf, starting empty; existing entries will be overwritten on save",
			"path", path, "error", err)
	}
	return NewShortcuts()
}

// Len returns the number of records.
func (s *Shortcuts) Len() int {
	return len(s.root)
}

// IDs returns the slot ids in file order. Non-numeric keys are skipped.
func (s *Shortcuts) IDs() []int {
	ids := make([]int, 0, len(s.root))
	for _, f := range s.root {
		if id, ok := slotID(f.Key); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Entry returns the raw record stored under slot id.
func (s *Shortcuts) Entry(id int) (vdf.Object, bool) {
	return s.root.GetObject(strconv.Itoa(id))
}

// Names returns the display name of every record in file order.
func (s *Shortcuts) Names() []string {
	var names []string
	for _, f := range s.root {
		if rec, ok := f.Value.(vdf.Object); ok {
			if name, ok := displayName(rec); ok {
				names = append(names, name)
			}
		}
	}
	return names
}

// Contains reports whether a record's display name equals appName under
// Unicode case folding.
func (s *Shortcuts) Contains(appName string) bool {
	if appName == "" {
		return false
	}

	fold := cases.Fold()
	want := fold.String(appName)

	for _, f := range s.root {
		rec, ok := f.Value.(vdf.Object)
		if !ok {
			continue
		}
		for _, key := range appNameKeys {
			if name, ok := rec.GetString(key); ok && name != "" && fold.String(name) == want {
				return true
			}
		}
	}
	return false
}

// Append stores sc under the next slot id (highest id + 1, or 0 when empty)
// and returns that id. It does not check for duplicates.
func (s *Shortcuts) Append(sc Shortcut) int {
	next := 0
	for _, id := range s.IDs() {
		if id >= next {
			next = id + 1
		}
	}

	s.root = append(s.root, vdf.Field{Key: strconv.Itoa(next), Value: sc.Object()})
	return next
}

// Encode serializes the store in shortcuts.vdf format.
func (s *Shortcuts) Encode() ([]byte, error) {
	doc := append(vdf.Object(nil), s.doc...)
	doc.Set(shortcutsRootKey, s.root)
	return vdf.Encode(doc)
}

// Save writes the store to path. The file is replaced atomically through a
// temporary file in the same directory. An existing file keeps its
// permissions; a new one is created 0644.
func (s *Shortcuts) Save(path string) error {
	data, err := s.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode shortcuts: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "shortcuts-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write shortcuts: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync shortcuts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close shortcuts: %w", err)
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

func displayName(rec vdf.Object) (string, bool) {
	for _, key := range appNameKeys {
		if name, ok := rec.GetString(key); ok && name != "" {
			return name, true
		}
	}
	return "", false
}

func slotID(key string) (int, bool) {
	id, err := strconv.Atoi(key)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
