package llm

import (
	"context"
	"fmt"

	"pediatric-triage/internal/common/config"
	"pediatric-triage/internal/common/logger"
)

// NewFromConfig builds the configured provider behind a lazy loader and a
// bounded inference pool. Nothing touches the network until first use.
func NewFromConfig(cfg config.ModelConfig, log logger.Logger) (Model, error) {
	timeout := config.GetDuration(cfg.Timeout)

	var load Loader
	switch cfg.Provider {
	case config.ProviderOpenAI:
		load = func(ctx context.Context) (Model, error) {
			m := NewOpenAIModel(OpenAIOptions{
				APIKey:    cfg.APIKey,
				BaseURL:   cfg.BaseURL,
				Model:     cfg.Name,
				MaxTokens: cfg.MaxTokens,
				Timeout:   timeout,
			})
			if err := m.Verify(ctx); err != nil {
				log.Error("model load failed", map[string]interface{}{
					"provider": cfg.Provider,
					"model":    cfg.Name,
					"error":    err,
				})
				return nil, err
			}
			log.Info("model loaded", map[string]interface{}{
				"provider": cfg.Provider,
				"model":    cfg.Name,
			})
			return m, nil
		}
	case config.ProviderGenAI:
		load = func(context.Context) (Model, error) {
			log.Info("model loaded", map[string]interface{}{
				"provider": cfg.Provider,
				"baseURL":  cfg.BaseURL,
			})
			return NewGenAIModel(cfg.BaseURL, cfg.APIKey, cfg.MaxTokens, timeout), nil
		}
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}

	return NewPool(NewLazy(load), cfg.MaxConcurrency, cfg.Provider), nil
}
