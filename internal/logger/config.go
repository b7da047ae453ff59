// Package logger provides leveled logging for the editing engine.
package logger

import (
	"log/slog"
	"strings"
)

// Config holds the logger settings exposed through the main config file.
type Config struct {
	// LogLevel is the minimum level to log ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`

	// LogFilePath is the output log file. "-" means stderr; empty falls back
	// to the application default.
	LogFilePath string `toml:"log_file"`
}

// NewConfig returns a Config with default values.
func NewConfig() Config {
	return Config{
		LogLevel:    "info",
		LogFilePath: "",
	}
}

// Level parses the configured level string, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
