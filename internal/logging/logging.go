// Package logging builds the structured loggers passed to each component.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Options controls logger construction.
type Options struct {
	// Verbose enables debug-level records.
	Verbose bool
	// File, when set, receives a copy of every record. It is synced after
	// each write so a crash never loses already reported progress.
	File string
}

// New returns a text logger writing to w and, optionally, to Options.File.
// The returned closer releases the log file and is never nil.
func New(w io.Writer, opts Options) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		fw, err := openFile(opts.File)
		if err != nil {
			return nil, nil, err
		}
		w = io.MultiWriter(w, fw)
		closer = fw
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closer, nil
}

// OrDiscard returns l, or a logger that drops everything when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Component tags l with the component name.
func Component(l *slog.Logger, name string) *slog.Logger {
	return OrDiscard(l).With("component", name)
}

// syncWriter appends to a file and syncs after every write.
type syncWriter struct {
	mu   sync.Mutex
	file *os.File
}

func openFile(path string) (*syncWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &syncWriter{file: f}, nil
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return 0, fmt.Errorf("log file closed")
	}

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, w.file.Sync()
}

func (w *syncWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
