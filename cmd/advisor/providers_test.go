package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-advisor/internal/infra/config"
	"github.com/yanqian/weather-advisor/internal/infra/llm/chatgpt"
	"github.com/yanqian/weather-advisor/internal/infra/llm/gemini"
)

func TestProvideCompleter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{LLM: config.LLMConfig{Provider: config.ProviderOpenAI, Timeout: time.Second}}
	completer, err := provideCompleter(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.Nil(t, completer)

	cfg.LLM.APIKey = "sk-test"
	completer, err = provideCompleter(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.IsType(t, &chatgpt.Completer{}, completer)

	cfg.LLM.Provider = config.ProviderGemini
	cfg.LLM.GeminiAPIKey = "gm-test"
	completer, err = provideCompleter(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.IsType(t, &gemini.Completer{}, completer)
}
