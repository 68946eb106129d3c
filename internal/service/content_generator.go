package service

import (
	"context"
	"fmt"

	"github.com/fadilmartias/resume-critique/internal/config"
	"github.com/fadilmartias/resume-critique/internal/critique"
)

// NewContentGenerator builds the provider selected by cfg.Provider.
func NewContentGenerator(ctx context.Context, cfg config.LLMConfig) (critique.ContentGenerator, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, config.ProviderOpenRouter:
		s, err := NewOpenRouterService(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.ProviderGemini:
		s, err := NewGeminiService(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
