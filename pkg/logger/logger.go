// Package logger constructs the structured logger threaded through every
// subsystem's Config struct.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls how the underlying zap logger is built.
type Options struct {
	// Development selects zap's development preset (console encoding,
	// caller/stacktrace on Warn+) instead of the production JSON preset.
	Development bool

	// Level is the minimum enabled level, e.g. "debug", "info", "warn", "error".
	// Defaults to "info" when empty.
	Level string
}

// New builds a *zap.SugaredLogger according to opts.
func New(opts Options) (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	var cfg zap.Config
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return log.Sugar(), nil
}

// Nop returns a logger that discards everything, for tests that need a
// *zap.SugaredLogger but don't care about its output.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
