// Package logging provides the process-wide structured logger.
// It wraps zap behind package-level formatted helpers so call sites
// stay terse and the backend can be swapped without touching them.
package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger *zap.SugaredLogger = newLogger("info", "console")
)

// InitFromEnv configures the global logger from LOG_LEVEL and LOG_FORMAT.
// LOG_LEVEL is one of debug|info|warn|error (default info); LOG_FORMAT is
// json or console (default console).
func InitFromEnv() *zap.SugaredLogger {
	level := strings.ToLower(os.Getenv("LOG_LEVEL"))
	format := strings.ToLower(os.Getenv("LOG_FORMAT"))

	mu.Lock()
	logger = newLogger(level, format)
	mu.Unlock()
	return logger
}

func newLogger(level, format string) *zap.SugaredLogger {
	zapLevel := zapcore.InfoLevel
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zapLevel)
	return zap.New(core, zap.AddCallerSkip(1)).Sugar()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...any) { get().Debugf(format, args...) }

// Infof logs a formatted info message.
func Infof(format string, args ...any) { get().Infof(format, args...) }

// Warnf logs a formatted warning message.
func Warnf(format string, args ...any) { get().Warnf(format, args...) }

// Errorf logs a formatted error message.
func Errorf(format string, args ...any) { get().Errorf(format, args...) }

// Fatalf logs a formatted message and exits the process.
func Fatalf(format string, args ...any) { get().Fatalf(format, args...) }

// Sync flushes any buffered log entries.
func Sync() error { return get().Sync() }
