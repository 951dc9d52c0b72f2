package logger

import (
	"log"
	"log/slog"
	"os"
)

// New creates a debug-level slog logger writing to a file; the TUI owns the
// terminal, so logs can never go to stdout. The path defaults to f1replay.log
// in the working directory and can be overridden with F1REPLAY_LOG.
func New() (*slog.Logger, *os.File) {
	path := os.Getenv("F1REPLAY_LOG")
	if path == "" {
		path = "f1replay.log"
	}

	file, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	return slog.New(handler), file
}
