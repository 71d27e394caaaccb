package llm_fx

import (
	"context"
	"io"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"travelmate/internal/config"
	"travelmate/pkg/utils"
)

var Module = fx.Provide(provideTextGenerator)

func provideTextGenerator(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.TextGenerator, error) {
	generator, err := utils.NewTextGenerator(context.Background(), cfg.LLM.Provider, utils.LLMOptions{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("text generator ready", zap.String("provider", cfg.LLM.Provider), zap.String("source", generator.Name()))

	if closer, ok := generator.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})
	}
	return generator, nil
}
