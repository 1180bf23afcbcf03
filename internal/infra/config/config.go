package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration for the advisor CLI and the weather tool server.
type Config struct {
	MCP       MCPConfig       `yaml:"mcp"`
	LLM       LLMConfig       `yaml:"llm"`
	Advisor   AdvisorConfig   `yaml:"advisor"`
	HTTP      HTTPConfig      `yaml:"http"`
	OpenMeteo OpenMeteoConfig `yaml:"openMeteo"`
}

// MCPConfig points the advisor at the tool-invocation server.
type MCPConfig struct {
	BaseURL string        `yaml:"baseUrl"`
	Timeout time.Duration `yaml:"timeout"`
}

// LLMConfig contains completion provider settings. An empty key disables refinement.
type LLMConfig struct {
	Provider     string        `yaml:"provider"`
	APIKey       string        `yaml:"apiKey"`
	GeminiAPIKey string        `yaml:"geminiApiKey"`
	BaseURL      string        `yaml:"baseUrl"`
	Model        string        `yaml:"model"`
	Temperature  float32       `yaml:"temperature"`
	Timeout      time.Duration `yaml:"timeout"`
}

// AdvisorConfig holds refinement defaults used when flags are omitted.
type AdvisorConfig struct {
	Tone            string `yaml:"tone"`
	Detail          string `yaml:"detail"`
	MaxPromptTokens int    `yaml:"maxPromptTokens"`
}

// HTTPConfig controls the weather tool server.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	StreamResponses bool            `yaml:"streamResponses"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// OpenMeteoConfig locates the upstream geocoding and forecast APIs.
type OpenMeteoConfig struct {
	GeocodingURL string        `yaml:"geocodingUrl"`
	ForecastURL  string        `yaml:"forecastUrl"`
	Timeout      time.Duration `yaml:"timeout"`
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Load reads configuration from .env, a YAML file and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.MCP.BaseURL, "MCP_BASE_URL")
	setDuration(&cfg.MCP.Timeout, "MCP_TIMEOUT")

	setString(&cfg.LLM.Provider, "LLM_PROVIDER")
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	} else if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	setString(&cfg.LLM.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	setString(&cfg.LLM.Model, "LLM_MODEL")
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	setDuration(&cfg.LLM.Timeout, "LLM_TIMEOUT")

	setString(&cfg.Advisor.Tone, "ADVISOR_TONE")
	setString(&cfg.Advisor.Detail, "ADVISOR_DETAIL")
	setInt(&cfg.Advisor.MaxPromptTokens, "ADVISOR_MAX_PROMPT_TOKENS")

	setString(&cfg.HTTP.Address, "HTTP_ADDRESS")
	setBool(&cfg.HTTP.StreamResponses, "HTTP_STREAM_RESPONSES")
	setBool(&cfg.HTTP.RateLimit.Enabled, "HTTP_RATE_LIMIT_ENABLED")
	setInt(&cfg.HTTP.RateLimit.RequestsPerMinute, "HTTP_RATE_LIMIT_RPM")
	setInt(&cfg.HTTP.RateLimit.Burst, "HTTP_RATE_LIMIT_BURST")

	setString(&cfg.OpenMeteo.GeocodingURL, "OPEN_METEO_GEOCODING_URL")
	setString(&cfg.OpenMeteo.ForecastURL, "OPEN_METEO_FORECAST_URL")
	setDuration(&cfg.OpenMeteo.Timeout, "OPEN_METEO_TIMEOUT")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		MCP: MCPConfig{
			BaseURL: "http://127.0.0.1:8000",
			Timeout: 20 * time.Second,
		},
		LLM: LLMConfig{
			Provider:    ProviderOpenAI,
			Model:       "gpt-4o-mini",
			Temperature: 0.4,
			Timeout:     20 * time.Second,
		},
		Advisor: AdvisorConfig{
			Tone:            "friendly",
			Detail:          "short",
			MaxPromptTokens: 2000,
		},
		HTTP: HTTPConfig{
			Address:         "127.0.0.1:8000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			StreamResponses: true,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		OpenMeteo: OpenMeteoConfig{
			GeocodingURL: "https://geocoding-api.open-meteo.com/v1/search",
			ForecastURL:  "https://api.open-meteo.com/v1/forecast",
			Timeout:      20 * time.Second,
		},
	}
}

// CompletionKey returns the credential for the selected provider; empty disables refinement.
func (c *Config) CompletionKey() string {
	if strings.EqualFold(c.LLM.Provider, ProviderGemini) {
		return strings.TrimSpace(c.LLM.GeminiAPIKey)
	}
	return strings.TrimSpace(c.LLM.APIKey)
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.MCP.BaseURL) == "" {
		return errors.New("mcp.baseUrl cannot be empty")
	}
	if c.MCP.Timeout <= 0 {
		return errors.New("mcp.timeout must be positive")
	}
	switch strings.ToLower(c.LLM.Provider) {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("llm.provider must be %q or %q", ProviderOpenAI, ProviderGemini)
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if c.Advisor.MaxPromptTokens < 0 {
		return errors.New("advisor.maxPromptTokens cannot be negative")
	}
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.OpenMeteo.GeocodingURL == "" || c.OpenMeteo.ForecastURL == "" {
		return errors.New("openMeteo.geocodingUrl and openMeteo.forecastUrl cannot be empty")
	}
	return nil
}
