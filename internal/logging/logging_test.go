package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(&buf, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer closer.Close()

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record should be filtered without Verbose")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info record missing")
	}

	buf.Reset()
	verbose, _, err := New(&buf, Options{Verbose: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	verbose.Debug("hidden")
	if !strings.Contains(buf.String(), "hidden") {
		t.Error("debug record should be written with Verbose")
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")

	var buf bytes.Buffer
	logger, closer, err := New(&buf, Options{File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("processing complete", "succeeded", 2, "total", 3)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "succeeded=2") {
		t.Errorf("log file = %q, want succeeded=2", data)
	}
	if !strings.Contains(buf.String(), "succeeded=2") {
		t.Errorf("console = %q, want succeeded=2", buf.String())
	}

	// Writes after close fail instead of panicking.
	if _, err := closer.(*syncWriter).Write([]byte("x")); err == nil {
		t.Error("Write() after Close() should fail")
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, _, _ := New(&buf, Options{})

	Component(logger, "shortcuts").Info("hello")
	if !strings.Contains(buf.String(), "component=shortcuts") {
		t.Errorf("output = %q, want component attribute", buf.String())
	}

	// A nil logger is tolerated.
	Component(nil, "shortcuts").Info("dropped")
}
