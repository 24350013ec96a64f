package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// LogLevel represents logging verbosity
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// Config holds logger configuration
type Config struct {
	Level      LogLevel
	OutputPath string // Empty for stdout, or file path
	Format     string // "json" or "text"
}

// Handle owns one *slog.Logger and whatever file handle backs it. An Engine
// constructs exactly one Handle in Open and closes it in Close; every
// component the Engine wires — the Coordinator, and anything built on top
// of it — holds the same Handle rather than reaching for package-level
// state, so two Engines opened in the same process never fight over a
// shared logger or a shared log file.
type Handle struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	logFile *os.File
}

// Open builds a Handle from config. An empty OutputPath logs to stdout.
func Open(config Config) (*Handle, error) {
	var writer io.Writer
	var logFile *os.File

	if config.OutputPath == "" {
		writer = os.Stdout
	} else {
		logDir := filepath.Dir(config.OutputPath)
		if err := os.MkdirAll(logDir, 0o750); err != nil {
			return nil, err
		}

		file, err := os.OpenFile(config.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, err
		}
		writer = file
		logFile = file
	}

	var level slog.Level
	switch config.Level {
	case LevelDebug:
		level = slog.LevelDebug
	case LevelInfo:
		level = slog.LevelInfo
	case LevelWarn:
		level = slog.LevelWarn
	case LevelError:
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	return &Handle{logger: slog.New(handler), logFile: logFile}, nil
}

// Default returns a Handle with sensible defaults: INFO level, stdout, text
// format. Engine.Open falls back to this when its Config carries no
// Logging field at all.
func Default() *Handle {
	return &Handle{
		logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})),
	}
}

// Logger returns h's current *slog.Logger in a thread-safe manner.
func (h *Handle) Logger() *slog.Logger {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.logger
}

// Close releases h's file handle, if it has one, and clears its logger.
// Safe to call more than once; Engine.Close calls this as part of shutting
// an Engine down.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.logFile == nil {
		h.logger = nil
		return nil
	}

	err := h.logFile.Close()
	h.logFile = nil
	h.logger = nil
	return err
}
