package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/yanqian/weather-advisor/internal/domain/advisory"
	"github.com/yanqian/weather-advisor/pkg/metrics"
)

// generator is the subset of *genai.Models used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Completer adapts the Gemini API to the advisory refiner.
type Completer struct {
	models generator
}

// NewCompleter creates a Gemini client bound to an API key.
func NewCompleter(ctx context.Context, apiKey, baseURL string, timeout time.Duration) (*Completer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if base := strings.TrimSpace(baseURL); base != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Completer{models: client.Models}, nil
}

// Complete sends the user prompt with the system prompt as system instruction.
func (c *Completer) Complete(ctx context.Context, req advisory.CompletionRequest) (advisory.Completion, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       genai.Ptr(req.Temperature),
	}

	result, err := c.models.GenerateContent(ctx, req.Model, genai.Text(req.User), config)
	if err != nil {
		return advisory.Completion{}, fmt.Errorf("gemini generate content: %w", err)
	}
	if result == nil {
		return advisory.Completion{}, errors.New("gemini returned no response")
	}

	out := advisory.Completion{Text: strings.TrimSpace(result.Text())}
	if usage := result.UsageMetadata; usage != nil {
		out.Usage = metrics.TokenUsage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}
	return out, nil
}

var _ advisory.Completer = (*Completer)(nil)
