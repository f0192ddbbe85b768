package cli

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/coast-guide/agent-fleet/internal/config"
	"github.com/coast-guide/agent-fleet/pkg/version"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)

	log, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return log.With(
		zap.String("app", cfg.App.Name),
		zap.String("version", version.Version),
	), nil
}
