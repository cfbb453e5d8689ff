// Package logger configures the application logger. The TUI owns the
// terminal, so logs go to a file next to the data files rather than stderr.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production logger writing to the given file path.
// The directory is created if missing.
func New(path string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	return cfg.Build()
}

// Nop returns a logger that discards everything. Used in tests and as the
// fallback when the log file cannot be opened.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// DefaultLogPath returns the default log file path: ~/.config/ytmark/ytmark.log
func DefaultLogPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "ytmark", "ytmark.log"), nil
}
