package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/yanqian/weather-advisor/internal/domain/advisory"
	"github.com/yanqian/weather-advisor/internal/domain/weather"
	"github.com/yanqian/weather-advisor/internal/infra/config"
	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
)

const (
	ExitOK    = 0
	ExitUsage = 2
)

// WeatherClient fetches current conditions for one city.
type WeatherClient interface {
	Fetch(ctx context.Context, city string) (weather.Metrics, error)
}

// Runner drives the per-city advisory loop.
type Runner struct {
	client   WeatherClient
	refiner  advisory.Refiner
	defaults Defaults
	logger   *slog.Logger
}

// NewRunner constructs the CLI driver.
func NewRunner(cfg *config.Config, client WeatherClient, refiner advisory.Refiner, logger *slog.Logger) *Runner {
	return &Runner{
		client:  client,
		refiner: refiner,
		defaults: Defaults{
			Model:  cfg.LLM.Model,
			Tone:   cfg.Advisor.Tone,
			Detail: cfg.Advisor.Detail,
		},
		logger: logger.With("component", "cli"),
	}
}

// Main parses args, processes every city and returns the process exit code.
func (r *Runner) Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := ParseArgs(args, r.defaults, stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return ExitOK
	case errors.Is(err, ErrNoCities):
		return ExitUsage
	case err != nil:
		fmt.Fprintf(stderr, "advisor: %v\n", err)
		return ExitUsage
	}

	r.Run(ctx, opts, stdout)
	return ExitOK
}

// Run prints one line per city in input order. A failed city never stops the batch.
func (r *Runner) Run(ctx context.Context, opts Options, out io.Writer) {
	if opts.Refine && !r.refiner.Enabled() {
		r.logger.Warn("no LLM credential configured, using rule-based advisories")
	}

	for _, city := range opts.Cities {
		if ctx.Err() != nil {
			r.logger.Warn("interrupted", "remaining", city)
			return
		}
		fmt.Fprintln(out, r.line(ctx, city, opts))
	}
}

func (r *Runner) line(ctx context.Context, city string, opts Options) string {
	r.logger.Debug("fetching weather", "city", city, "refine", opts.Refine)
	m, err := r.client.Fetch(ctx, city)
	if err != nil {
		r.logger.Warn("weather fetch failed", "city", city, "code", apperrors.CodeOf(err), "error", err)
		return FormatError(city, err)
	}

	advice := advisory.Advise(m)
	if opts.Refine {
		advice = r.refiner.Refine(ctx, city, m, advice, opts.Advisory)
	}
	return FormatLine(city, m, advice)
}
