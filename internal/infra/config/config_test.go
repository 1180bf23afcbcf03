package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8000", cfg.MCP.BaseURL)
	require.Equal(t, 20*time.Second, cfg.MCP.Timeout)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	require.Equal(t, "friendly", cfg.Advisor.Tone)
	require.Equal(t, "short", cfg.Advisor.Detail)
	require.Empty(t, cfg.CompletionKey())
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)

	path := filepath.Join(dir, "advisor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
mcp:
  baseUrl: http://weather.internal:9000
  timeout: 5s
llm:
  model: gpt-4.1-mini
advisor:
  tone: formal
http:
  streamResponses: false
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("ADVISOR_TONE", "neutral")
	t.Setenv("OPENAI_API_KEY", "sk-from-openai-env")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://weather.internal:9000", cfg.MCP.BaseURL)
	require.Equal(t, 5*time.Second, cfg.MCP.Timeout)
	require.Equal(t, "gpt-4.1-mini", cfg.LLM.Model)
	require.Equal(t, "neutral", cfg.Advisor.Tone)
	require.False(t, cfg.HTTP.StreamResponses)
	require.Equal(t, "sk-from-openai-env", cfg.CompletionKey())
}

func TestLLMAPIKeyWinsOverOpenAIKey(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "sk-primary")
	t.Setenv("OPENAI_API_KEY", "sk-secondary")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sk-primary", cfg.LLM.APIKey)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=gm-dotenv\nLLM_PROVIDER=gemini\n"), 0o600))
	// godotenv never overrides variables that exist, even when empty.
	require.NoError(t, os.Unsetenv("GEMINI_API_KEY"))
	require.NoError(t, os.Unsetenv("LLM_PROVIDER"))
	t.Cleanup(func() {
		os.Unsetenv("GEMINI_API_KEY")
		os.Unsetenv("LLM_PROVIDER")
	})

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gemini", cfg.LLM.Provider)
	require.Equal(t, "gm-dotenv", cfg.CompletionKey())
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := defaultConfig()
	cfg.LLM.Provider = "claude"
	require.ErrorContains(t, cfg.Validate(), "llm.provider")

	cfg = defaultConfig()
	cfg.MCP.Timeout = 0
	require.EqualError(t, cfg.Validate(), "mcp.timeout must be positive")
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_PATH", "MCP_BASE_URL", "MCP_TIMEOUT", "LLM_PROVIDER", "LLM_API_KEY", "OPENAI_API_KEY",
		"GEMINI_API_KEY", "LLM_BASE_URL", "LLM_MODEL", "LLM_TEMPERATURE", "LLM_TIMEOUT",
		"ADVISOR_TONE", "ADVISOR_DETAIL", "ADVISOR_MAX_PROMPT_TOKENS", "HTTP_ADDRESS",
		"HTTP_STREAM_RESPONSES", "HTTP_RATE_LIMIT_ENABLED", "HTTP_RATE_LIMIT_RPM", "HTTP_RATE_LIMIT_BURST",
		"OPEN_METEO_GEOCODING_URL", "OPEN_METEO_FORECAST_URL", "OPEN_METEO_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}
