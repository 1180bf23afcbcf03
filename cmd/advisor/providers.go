package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yanqian/weather-advisor/internal/domain/advisory"
	"github.com/yanqian/weather-advisor/internal/infra/config"
	"github.com/yanqian/weather-advisor/internal/infra/llm/chatgpt"
	"github.com/yanqian/weather-advisor/internal/infra/llm/gemini"
	"github.com/yanqian/weather-advisor/internal/infra/mcp"
)

func provideRefinerConfig(cfg *config.Config) advisory.Config {
	return advisory.Config{
		Model:           cfg.LLM.Model,
		Temperature:     cfg.LLM.Temperature,
		Timeout:         cfg.LLM.Timeout,
		MaxPromptTokens: cfg.Advisor.MaxPromptTokens,
	}
}

// provideCompleter returns a nil Completer when no credential is configured,
// which keeps the refiner offline.
func provideCompleter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (advisory.Completer, error) {
	key := cfg.CompletionKey()
	if key == "" {
		logger.Debug("llm credential not set, refinement disabled", "provider", cfg.LLM.Provider)
		return nil, nil
	}

	switch strings.ToLower(cfg.LLM.Provider) {
	case config.ProviderGemini:
		completer, err := gemini.NewCompleter(ctx, key, cfg.LLM.BaseURL, cfg.LLM.Timeout)
		if err != nil {
			return nil, err
		}
		return completer, nil
	default:
		client, err := chatgpt.NewClient(key, cfg.LLM.BaseURL, cfg.LLM.Timeout)
		if err != nil {
			return nil, err
		}
		return chatgpt.NewCompleter(client), nil
	}
}

func provideWeatherClient(cfg *config.Config) *mcp.Client {
	return mcp.NewClient(cfg.MCP.BaseURL, cfg.MCP.Timeout)
}
