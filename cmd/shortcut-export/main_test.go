package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lobinuxsoft/shortcut-export/pkg/steam"
)

const loginUsers = `"users"
{
	"76561197960265729"
	{
		"AccountName"		"alice"
	}
}
`

func setupSteam(t *testing.T) (steamDir, launcher, configPath string) {
	t.Helper()

	root := t.TempDir()
	steamDir = filepath.Join(root, "Steam")
	require.NoError(t, os.MkdirAll(filepath.Join(steamDir, "config"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(steamDir, "userdata", "1"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(steamDir, "config", "loginusers.vdf"), []byte(loginUsers), 0644))

	launcher = filepath.Join(root, "launcher")
	require.NoError(t, os.WriteFile(launcher, []byte("#!/bin/sh\n"), 0755))

	configPath = filepath.Join(root, "apps.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("MyApp: {}\nOther:\n  applicationname: Other (Beta)\n"), 0644))

	return steamDir, launcher, configPath
}

func TestRun_Success(t *testing.T) {
	steamDir, launcher, configPath := setupSteam(t)
	logFile := filepath.Join(t.TempDir(), "export.log")

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"--config", configPath,
		"--account", "alice",
		"--launcher", launcher,
		"--steam-dir", steamDir,
		"--log-file", logFile,
	}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stderr.String(), `succeeded=2 total=2`)

	sc, err := steam.ReadShortcuts(filepath.Join(steamDir, "userdata", "1", "config", "shortcuts.vdf"))
	require.NoError(t, err)
	assert.Equal(t, []string{"MyApp", "Other (Beta)"}, sc.Names())

	logged, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "shortcut added")
}

func TestRun_PartialFailureExitsNonZero(t *testing.T) {
	steamDir, _, configPath := setupSteam(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-c", configPath,
		"-a", "alice",
		"-l", filepath.Join(t.TempDir(), "missing"),
		"--steam-dir", steamDir,
	}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), `succeeded=0 total=2`)
}

func TestRun_UnknownAccount(t *testing.T) {
	steamDir, launcher, configPath := setupSteam(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"--config", configPath,
		"--account", "nobody",
		"--launcher", launcher,
		"--steam-dir", steamDir,
	}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "DiscoveryError")
	assert.NoDirExists(t, filepath.Join(steamDir, "userdata", "1", "config"))
}

func TestRun_Flags(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"help", []string{"--help"}, 0, "--launcher", ""},
		{"version", []string{"--version"}, 0, "shortcut-export ", ""},
		{"missing required", []string{"--config", "apps.json"}, 1, "", "--account"},
		{"unknown flag", []string{"--bogus"}, 1, "", "bogus"},
		{"extra argument", []string{"-c", "a.json", "-a", "me", "-l", "x", "extra"}, 1, "", "unexpected arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantStdout != "" {
				assert.True(t, strings.Contains(stdout.String(), tt.wantStdout), "stdout = %q", stdout.String())
			}
			if tt.wantStderr != "" {
				assert.True(t, strings.Contains(stderr.String(), tt.wantStderr), "stderr = %q", stderr.String())
			}
		})
	}
}
