package judge

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"512b.it/drawday/src/config"
)

// New builds the judge selected by cfg.Provider
func New(ctx context.Context, cfg config.JudgeConfig, logger *zap.Logger) (Judge, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return NewOpenAIJudge(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Timeout, logger), nil
	case config.ProviderGemini:
		return NewGeminiJudge(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL, logger)
	default:
		return nil, fmt.Errorf("unknown judge provider %q", cfg.Provider)
	}
}
