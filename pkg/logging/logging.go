// Package logging holds the process-wide zap logger.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = mustNewLogger(zapcore.InfoLevel, false)
)

func mustNewLogger(level zapcore.Level, development bool) *zap.Logger {
	l, err := newLogger(level, development)
	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}
	return l
}

func newLogger(level zapcore.Level, development bool) (*zap.Logger, error) {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	// Skip the wrapper frame so callers show up in the output.
	return cfg.Build(zap.AddCallerSkip(1))
}

// Configure rebuilds the logger with the given level name ("debug", "info",
// "warn", "error").
func Configure(level string, development bool) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	l, err := newLogger(lvl, development)
	if err != nil {
		return err
	}
	ReplaceLogger(l)
	return nil
}

// ReplaceLogger swaps the underlying logger and returns the previous one.
func ReplaceLogger(l *zap.Logger) *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	prev := logger
	logger = l
	return prev
}

func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Debug(msg string, fields ...zap.Field) {
	Logger().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger().Error(msg, fields...)
}

// Fatal logs and exits the process.
func Fatal(msg string, fields ...zap.Field) {
	Logger().Fatal(msg, fields...)
}

func Sync() error {
	return Logger().Sync()
}
