package advisory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yanqian/weather-advisor/internal/domain/weather"
	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
)

// Refiner rewrites a rule-based advisory into more natural language.
// Refine always returns a usable advisory and degrades to the input on any failure.
type Refiner interface {
	Enabled() bool
	Refine(ctx context.Context, city string, m weather.Metrics, base string, opts Options) string
}

type refiner struct {
	cfg       Config
	completer Completer
	counter   TokenCounter
	logger    *slog.Logger
}

// NewRefiner wires the refiner. A nil completer means no credential is configured and
// every call returns the base advisory without touching the network.
func NewRefiner(cfg Config, completer Completer, counter TokenCounter, logger *slog.Logger) Refiner {
	return &refiner{
		cfg:       cfg,
		completer: completer,
		counter:   counter,
		logger:    logger.With("component", "advisory.refiner"),
	}
}

func (r *refiner) Enabled() bool {
	return r.completer != nil
}

func (r *refiner) Refine(ctx context.Context, city string, m weather.Metrics, base string, opts Options) string {
	if r.completer == nil {
		return base
	}

	req := CompletionRequest{
		Model:       r.model(opts),
		System:      buildSystemPrompt(opts.Tone),
		User:        buildUserPrompt(city, m, base, opts.Detail),
		Temperature: r.cfg.Temperature,
	}

	if r.counter != nil && r.cfg.MaxPromptTokens > 0 {
		estimated := r.counter.Count(req.Model, req.System+"\n"+req.User)
		if estimated > r.cfg.MaxPromptTokens {
			r.logger.Warn("refinement prompt over budget, keeping rule-based advisory", "city", city, "estimated_tokens", estimated, "max_tokens", r.cfg.MaxPromptTokens)
			return base
		}
		r.logger.Debug("refinement prompt estimated", "city", city, "estimated_tokens", estimated)
	}

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	text, err := r.complete(ctx, req)
	if err != nil {
		r.logger.Warn("refinement failed, keeping rule-based advisory", "city", city, "model", req.Model, "error", err)
		return base
	}
	return text
}

func (r *refiner) complete(ctx context.Context, req CompletionRequest) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = apperrors.Wrap(apperrors.CodeLLM, fmt.Sprintf("completion provider panicked: %v", p), nil)
		}
	}()

	completion, err := r.completer.Complete(ctx, req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeLLM, "completion request failed", err)
	}
	if !completion.Usage.IsZero() {
		r.logger.Debug("refinement token usage", completion.Usage.LogAttrs()...)
	}
	text = strings.TrimSpace(completion.Text)
	if text == "" {
		return "", apperrors.Wrap(apperrors.CodeLLM, "completion returned no text", nil)
	}
	return text, nil
}

func (r *refiner) model(opts Options) string {
	if m := strings.TrimSpace(opts.Model); m != "" {
		return m
	}
	return r.cfg.Model
}
