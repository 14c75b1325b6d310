// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"
	"github.com/nhmuk/bgap/pkg/config"
)

// Init initializes the global slog logger with the given configuration.
// Creates log file in logDir if destination is "file".
// If cfg.Append is true, appends to existing log file; otherwise creates
// a fresh file.
func Init(logDir string, cfg config.LogConfig) error {
	var writer io.Writer

	// Determine output destination
	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	case "file":
		logPath := filepath.Join(logDir, "bgap.log")
		var file *os.File
		var err error

		if cfg.Append {
			// Append to existing log file (preserve previous logs)
			file, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		} else {
			// Create fresh log file (truncate if exists)
			file, err = os.Create(logPath)
		}

		if err != nil {
			return CreateLogFileError(logPath, err)
		}
		writer = file
	default:
		writer = os.Stderr
	}

	// Parse log level
	level := parseLevel(cfg.Level)

	// Create handler based on format
	var handler slog.Handler
	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(writer, handlerOpts)
	case "text":
		handler = slog.NewTextHandler(writer, handlerOpts)
	case "tint":
		handler = tint.NewHandler(writer, &tint.Options{
			Level: level,
			// Color codes corrupt log files, keep them for terminals.
			NoColor: cfg.Destination == "file",
		})
	default:
		// Default to JSON format for any unrecognized format
		handler = slog.NewJSONHandler(writer, handlerOpts)
	}

	// Set as default logger
	slog.SetDefault(slog.New(handler))

	return nil
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
