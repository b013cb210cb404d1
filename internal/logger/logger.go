package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/maktabati-bot/internal/config"
)

const envProduction = "production"

// New returns a JSON logger for env "production" and a console logger
// otherwise. cfg.LogLevel, when set, replaces the environment's default
// level (debug for development, info for production).
func New(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == envProduction {
		zcfg = zap.NewProductionConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		zcfg.Level = level
	}

	lg, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return lg.With(zap.String("env", cfg.Env)), nil
}
