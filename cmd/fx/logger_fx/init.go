package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"travelmate/internal/config"
	"travelmate/pkg/utils"
)

var Module = fx.Provide(provideLogger)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return nil, err
	}

	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
	return logger, nil
}
