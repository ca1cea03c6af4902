// Package config loads the list of applications to export as shortcuts.
//
// A configuration file is a JSON (or YAML) object whose keys are application
// names. Each value is an object that may carry an "applicationname" string
// overriding the name shown in the Steam library:
//
//	{
//	  "MyApp": {},
//	  "Other": {"applicationname": "Other (Beta)"}
//	}
//
// Applications keep the order in which they appear in the file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Configuration errors.
var (
	ErrNotFound = errors.New("configuration file not found")
	ErrParse    = errors.New("invalid configuration file")
	ErrEmpty    = errors.New("configuration file is empty")
)

// Format identifies the configuration file syntax.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks the format from the file extension.
// Anything other than .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// App is one configured application.
type App struct {
	// Key is the application name. It is passed to the launcher and is the
	// default display name.
	Key string
	// ApplicationName overrides the display name when set.
	ApplicationName *string
}

// DisplayName returns the name the shortcut is shown under.
func (a App) DisplayName() string {
	if a.ApplicationName != nil {
		return *a.ApplicationName
	}
	return a.Key
}

// Config is the ordered list of configured applications.
type Config struct {
	Apps []App
}

// Len returns the number of configured applications.
func (c *Config) Len() int {
	return len(c.Apps)
}

// appAttributes is the value stored under each application key.
type appAttributes struct {
	ApplicationName *string `json:"applicationname" yaml:"applicationname"`
}

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	return Parse(data, FormatFromPath(path))
}

// Parse decodes configuration content in the given format.
func Parse(data []byte, format Format) (*Config, error) {
	data, err := stripBOM(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var cfg *Config
	switch format {
	case FormatYAML:
		cfg, err = parseYAML(data)
	default:
		cfg, err = parseJSON(data)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Len() == 0 {
		return nil, ErrEmpty
	}
	return cfg, nil
}

// stripBOM decodes data as UTF-8, honouring (and removing) any byte order mark.
// Content without a UTF-16 byte order mark must be valid UTF-8.
func stripBOM(data []byte) ([]byte, error) {
	if !hasUTF16BOM(data) && !utf8.Valid(data) {
		return nil, errors.New("content is not valid UTF-8")
	}
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return io.ReadAll(transform.NewReader(bytes.NewReader(data), decoder))
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFE, 0xFF}) || bytes.HasPrefix(data, []byte{0xFF, 0xFE})
}

// isEmptyDocument reports whether a decoded document holds no entries:
// null, an empty object or an empty array.
func isEmptyDocument(raw interface{}) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case map[string]interface{}:
		return len(v) == 0
	case []interface{}:
		return len(v) == 0
	default:
		return false
	}
}

func parseJSON(data []byte) (*Config, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if isEmptyDocument(raw) {
		return &Config{}, nil
	}

	if err := validate(data); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top level must be an object", ErrParse)
	}

	cfg := &Config{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", ErrParse, tok)
		}

		var attrs appAttributes
		if err := dec.Decode(&attrs); err != nil {
			return nil, fmt.Errorf("%w: application %q: %v", ErrParse, key, err)
		}
		cfg.add(key, attrs)
	}

	return cfg, nil
}

func parseYAML(data []byte) (*Config, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if isEmptyDocument(raw) {
		return &Config{}, nil
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := validate(jsonData); err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrParse)
	}

	cfg := &Config{}
	mapping := doc.Content[0]
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value

		var attrs appAttributes
		if err := mapping.Content[i+1].Decode(&attrs); err != nil {
			return nil, fmt.Errorf("%w: application %q: %v", ErrParse, key, err)
		}
		cfg.add(key, attrs)
	}

	return cfg, nil
}

// add appends an application. A repeated key keeps its first position and
// takes the later attributes.
func (c *Config) add(key string, attrs appAttributes) {
	for i := range c.Apps {
		if c.Apps[i].Key == key {
			c.Apps[i].ApplicationName = attrs.ApplicationName
			return
		}
	}
	c.Apps = append(c.Apps, App{Key: key, ApplicationName: attrs.ApplicationName})
}
