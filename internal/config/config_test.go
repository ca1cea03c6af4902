package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func keys(cfg *Config) []string {
	var out []string
	for _, app := range cfg.Apps {
		out = append(out, app.Key)
	}
	return out
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", []byte(`{
		"Zeta": {},
		"MyApp": {"applicationname": "Custom Name"},
		"Alpha": {"unrelated": 3}
	}`))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Zeta", "MyApp", "Alpha"}, keys(cfg), "file order is preserved")
	assert.Equal(t, "Zeta", cfg.Apps[0].DisplayName())
	assert.Equal(t, "Custom Name", cfg.Apps[1].DisplayName())
	assert.Nil(t, cfg.Apps[2].ApplicationName)
}

func TestLoad_BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"MyApp": {}}`)...)
	path := writeConfig(t, "config.json", data)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"MyApp"}, keys(cfg))
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_Empty(t *testing.T) {
	path := writeConfig(t, "config.json", []byte(`{}`))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty file", ``},
		{"syntax error", `{"MyApp": `},
		{"array", `["MyApp"]`},
		{"string value", `{"MyApp": "oops"}`},
		{"non-string override", `{"MyApp": {"applicationname": 5}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatJSON)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParse_NullAttributes(t *testing.T) {
	cfg, err := Parse([]byte(`{"MyApp": null, "Other": {"applicationname": null}}`), FormatJSON)
	require.NoError(t, err)

	require.Equal(t, 2, cfg.Len())
	assert.Equal(t, "MyApp", cfg.Apps[0].DisplayName())
	assert.Nil(t, cfg.Apps[1].ApplicationName, "a null override means no override")
	assert.Equal(t, "Other", cfg.Apps[1].DisplayName())

	cfg, err = Parse([]byte("Other:\n  applicationname: ~\n"), FormatYAML)
	require.NoError(t, err)
	assert.Nil(t, cfg.Apps[0].ApplicationName)
	assert.Equal(t, "Other", cfg.Apps[0].DisplayName())
}

func TestParse_InvalidUTF8(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		_, err := Parse([]byte("{\"a\xff\": {}}"), format)
		assert.ErrorIs(t, err, ErrParse)
	}

	// Valid UTF-8 behind a BOM is still accepted.
	cfg, err := Parse(append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"Élan": {}}`)...), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"Élan"}, keys(cfg))
}

func TestParse_EmptyDocuments(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"json object", `{}`, FormatJSON},
		{"json null", `null`, FormatJSON},
		{"json array", `[]`, FormatJSON},
		{"yaml empty file", ``, FormatYAML},
		{"yaml null", "~\n", FormatYAML},
		{"yaml mapping", "{}\n", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			assert.ErrorIs(t, err, ErrEmpty)
		})
	}
}

func TestParse_EmptyOverrideIsKept(t *testing.T) {
	cfg, err := Parse([]byte(`{"MyApp": {"applicationname": ""}}`), FormatJSON)
	require.NoError(t, err)

	require.NotNil(t, cfg.Apps[0].ApplicationName)
	assert.Equal(t, "", cfg.Apps[0].DisplayName())
}

func TestParse_DuplicateKeys(t *testing.T) {
	cfg, err := Parse([]byte(`{"A": {}, "B": {}, "A": {"applicationname": "Later"}}`), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, keys(cfg))
	assert.Equal(t, "Later", cfg.Apps[0].DisplayName())
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", []byte(`
Zeta: {}
MyApp:
  applicationname: Custom Name
Alpha:
`))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Zeta", "MyApp", "Alpha"}, keys(cfg))
	assert.Equal(t, "Custom Name", cfg.Apps[1].DisplayName())
	assert.Equal(t, "Alpha", cfg.Apps[2].DisplayName())
}

func TestParse_YAMLInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"sequence", "- MyApp\n"},
		{"scalar value", "MyApp: oops\n"},
		{"bad syntax", "MyApp: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatYAML)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("apps.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("APPS.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("apps.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("apps"))
}
