package main

import (
	"fmt"
	"time"

	"github.com/Lin-Jiong-HDU/shellguard/internal/ai"
	"github.com/Lin-Jiong-HDU/shellguard/internal/ai/openai"
	"github.com/Lin-Jiong-HDU/shellguard/internal/storage"
)

// newAIProvider builds the provider named in the configuration
func newAIProvider(cfg *storage.Config) (ai.AIProvider, error) {
	if cfg.AI.APIKey == "" {
		return nil, fmt.Errorf("AI API key not configured, set OPENROUTER_API_KEY or ai.api_key in ~/.shellguard/config.yaml")
	}

	opts := []openai.Option{
		openai.WithMaxTokens(cfg.AI.MaxTokens),
		openai.WithTimeout(time.Duration(cfg.AI.Timeout) * time.Second),
	}

	baseURL := cfg.AI.BaseURL
	switch cfg.AI.Provider {
	case "openrouter":
		if baseURL == "" {
			baseURL = openai.OpenRouterBaseURL
		}
	case "openai":
		if baseURL == "" {
			baseURL = openai.DefaultBaseURL
		}
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.AI.Provider)
	}

	return openai.NewClient(cfg.AI.APIKey, cfg.AI.Model, baseURL, opts...), nil
}
