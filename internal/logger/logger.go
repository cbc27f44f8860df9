// Package logger wraps zap construction for the service.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Logger holds the service's structured logger.
type Logger struct {
	// Log is the underlying zap logger. Starts as a no-op until Init runs.
	Log *zap.Logger
}

// New returns a Logger with a no-op zap logger, so callers can log safely
// before Init.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init replaces the no-op logger with a production zap logger at the given
// level ("Debug", "Info", "Warn", "Error").
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	log, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = log
	return nil
}
