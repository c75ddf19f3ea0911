// Package logger wraps zap construction so main can create a logger
// before configuration is fully known and re-level it afterwards.
package logger

import (
	"go.uber.org/zap"
)

// Logger holds the shared zap logger for the application.
type Logger struct {
	// Log is the configured zap logger. Starts as a no-op until Init runs.
	Log *zap.Logger
}

// New returns a Logger with a no-op zap instance.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production zap logger at the given level ("Debug",
// "Info", "Warn", "Error") and installs it on l.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
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
