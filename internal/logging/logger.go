// Package logging wraps zap for structured logging.
// The terminal belongs to the TUIs, so log output goes to a file.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/skymap-live/skymap/pkg/config"
)

// New builds a SugaredLogger writing JSON lines to the configured file.
// An empty file path yields a no-op logger, which is also what tests use.
func New(cfg config.LogConfig) (*zap.SugaredLogger, error) {
	if cfg.File == "" {
		return zap.NewNop().Sugar(), nil
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{cfg.File}
	zcfg.ErrorOutputPaths = []string{cfg.File}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger.Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
