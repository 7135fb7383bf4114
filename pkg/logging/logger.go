// Package logging builds the service logger: an ectologger front end, as
// the rest of the codebase expects, draining into a zap core.
package logging

import (
	"fmt"

	"github.com/Gobusters/ectologger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the zap core the ectologger sink writes through.
type Config struct {
	Level  string // zap level name, e.g. "debug", "info"
	Pretty bool   // human-readable console output for local development
}

// NewLogger builds the ectologger used across the service. Every message
// is drained into zap as a single structured payload.
func NewLogger(cfg Config) (ectologger.Logger, error) {
	zapLogger, err := newZapLogger(cfg)
	if err != nil {
		return nil, err
	}

	return ectologger.NewEctoLogger(func(msg ectologger.EctoLogMessage) {
		zapLogger.Info("log", zap.Any("entry", msg))
	}), nil
}

// NewNopLogger returns a logger that discards everything. Test helper.
func NewNopLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func newZapLogger(cfg Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Pretty {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
