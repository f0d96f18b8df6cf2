package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

func init() {
	// Discard everything until Setup is called
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// Setup configures the default logger. Without debug mode all logs are
// discarded; nothing in this tool may write log output to the user's
// terminal. In debug mode everything is appended to the log file at logPath.
// The log file is created with mode 0600 (user-only).
func Setup(debug bool, logPath string) error {
	if !debug {
		return nil
	}

	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug, // Log everything, filter at output
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		return err
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(file, opts)))
	return nil
}
