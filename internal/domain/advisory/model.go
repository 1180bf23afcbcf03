package advisory

import (
	"context"
	"strings"
	"time"

	"github.com/yanqian/weather-advisor/pkg/metrics"
)

// Tone selects the phrasing style of a refined advisory.
type Tone string

const (
	ToneFriendly Tone = "friendly"
	ToneNeutral  Tone = "neutral"
	ToneFormal   Tone = "formal"
)

// Detail selects the length budget of a refined advisory.
type Detail string

const (
	DetailShort  Detail = "short"
	DetailMedium Detail = "medium"
)

// Options are the per-call refinement knobs exposed on the command line.
type Options struct {
	Model  string
	Tone   Tone
	Detail Detail
}

// Config wires runtime dependencies for the refiner.
type Config struct {
	Model           string
	Temperature     float32
	Timeout         time.Duration
	MaxPromptTokens int
}

// CompletionRequest is a single system + user exchange with a completion provider.
type CompletionRequest struct {
	Model       string
	System      string
	User        string
	Temperature float32
}

// Completion is the provider's answer.
type Completion struct {
	Text  string
	Usage metrics.TokenUsage
}

// Completer is implemented by each LLM provider adapter.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (Completion, error)
}

// TokenCounter estimates prompt size before a provider call.
type TokenCounter interface {
	Count(model, text string) int
}

func normalizeChoice(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
