package main

import (
	"io"
	"log/slog"
	"os"
)

// setupLog sends log records to path as JSON, or nowhere when path is
// empty, since the terminal belongs to the TUI.
func setupLog(path string) (closeFn func() error, err error) {
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return f.Close, nil
}
