package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-advisor/internal/domain/advisory"
	"github.com/yanqian/weather-advisor/internal/domain/weather"
	"github.com/yanqian/weather-advisor/internal/infra/config"
	"github.com/yanqian/weather-advisor/internal/infra/mcp"
	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
)

func TestMainFailedCityDoesNotStopBatch(t *testing.T) {
	seoul := weather.Metrics{City: "Seoul", Temperature: f(31), ApparentTemperature: f(34), WindSpeed: f(2.5), UVIndex: f(9), PrecipitationProbability: f(70), PrecipitationMM: f(1.2)}
	client := &stubClient{
		results: map[string]weather.Metrics{"Seoul": seoul},
		errs: map[string]error{
			"Atlantis": apperrors.Wrap(apperrors.CodeTool, `location "Atlantis" not found`, nil),
		},
	}
	runner := newRunnerUnderTest(client, &stubRefiner{})

	var stdout, stderr bytes.Buffer
	code := runner.Main(context.Background(), []string{"Atlantis", "Seoul"}, &stdout, &stderr)
	require.Equal(t, ExitOK, code)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, `Atlantis: failed to fetch weather (location "Atlantis" not found)`, lines[0])
	require.Equal(t, "Seoul: 31.0°C (feels 34.0°C), wind 2.5 m/s, UV 9.0, precip 70% / 1.2 mm | "+advisory.Advise(seoul), lines[1])
	require.Equal(t, []string{"Atlantis", "Seoul"}, client.calls)
}

func TestMainTransportFailureDoesNotStopBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	busan := weather.Metrics{Temperature: f(18), WindSpeed: f(3)}
	client := &fallthroughClient{
		first: mcp.NewClient(srv.URL, time.Second),
		rest:  &stubClient{results: map[string]weather.Metrics{"Busan": busan}},
	}
	runner := newRunnerUnderTest(client, &stubRefiner{})

	var stdout bytes.Buffer
	require.Equal(t, ExitOK, runner.Main(context.Background(), []string{"Seoul", "Busan"}, &stdout, io.Discard))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "Seoul: failed to fetch weather (tool request failed: "), lines[0])
	require.Equal(t, "Busan: 18.0°C (feels NA), wind 3.0 m/s, UV NA, precip NA / NA | "+advisory.Advise(busan), lines[1])
	require.True(t, apperrors.IsCode(client.firstErr, apperrors.CodeTransport))
}

func TestMainRefinesOnlyWithAIFlag(t *testing.T) {
	client := &stubClient{results: map[string]weather.Metrics{"Busan": {Temperature: f(18)}}}
	refiner := &stubRefiner{enabled: true, text: "Light jacket weather, enjoy the breeze."}
	runner := newRunnerUnderTest(client, refiner)

	var stdout bytes.Buffer
	require.Equal(t, ExitOK, runner.Main(context.Background(), []string{"Busan"}, &stdout, io.Discard))
	require.Zero(t, refiner.calls)
	require.True(t, strings.HasSuffix(strings.TrimSpace(stdout.String()), "| "+advisory.Advise(weather.Metrics{Temperature: f(18)})))

	stdout.Reset()
	require.Equal(t, ExitOK, runner.Main(context.Background(), []string{"Busan", "--ai", "--tone", "neutral"}, &stdout, io.Discard))
	require.Equal(t, 1, refiner.calls)
	require.Equal(t, advisory.ToneNeutral, refiner.lastOpts.Tone)
	require.Equal(t, "gpt-4o-mini", refiner.lastOpts.Model)
	require.Equal(t, "Busan: 18.0°C (feels NA), wind NA, UV NA, precip NA / NA | Light jacket weather, enjoy the breeze.\n", stdout.String())
}

func TestMainUsageErrors(t *testing.T) {
	runner := newRunnerUnderTest(&stubClient{}, &stubRefiner{})

	var stdout, stderr bytes.Buffer
	require.Equal(t, ExitUsage, runner.Main(context.Background(), nil, &stdout, &stderr))
	require.Contains(t, stderr.String(), "usage: advisor")
	require.Empty(t, stdout.String())

	stderr.Reset()
	require.Equal(t, ExitUsage, runner.Main(context.Background(), []string{"Seoul", "--tone", "grumpy"}, &stdout, &stderr))
	require.Contains(t, stderr.String(), "tone must be one of friendly, neutral, formal")
	require.Empty(t, stdout.String())
}

func TestRunStopsWhenCancelled(t *testing.T) {
	client := &stubClient{results: map[string]weather.Metrics{}}
	runner := newRunnerUnderTest(client, &stubRefiner{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	runner.Run(ctx, Options{Cities: []string{"Seoul", "Busan"}}, &stdout)
	require.Empty(t, stdout.String())
	require.Empty(t, client.calls)
}

func TestFormatLineAllMissing(t *testing.T) {
	require.Equal(t, "Oslo: NA (feels NA), wind NA, UV NA, precip NA / NA | No temperature data.",
		FormatLine("Oslo", weather.Metrics{}, advisory.Advise(weather.Metrics{})))
}

func newRunnerUnderTest(client WeatherClient, refiner advisory.Refiner) *Runner {
	cfg := &config.Config{
		LLM:     config.LLMConfig{Model: "gpt-4o-mini"},
		Advisor: config.AdvisorConfig{Tone: "friendly", Detail: "short"},
	}
	return NewRunner(cfg, client, refiner, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func f(v float64) *float64 { return &v }

type stubClient struct {
	results map[string]weather.Metrics
	errs    map[string]error
	calls   []string
}

func (s *stubClient) Fetch(ctx context.Context, city string) (weather.Metrics, error) {
	s.calls = append(s.calls, city)
	if err, ok := s.errs[city]; ok {
		return weather.Metrics{}, err
	}
	return s.results[city], nil
}

// fallthroughClient sends the first city to a real client and the rest to a stub.
type fallthroughClient struct {
	first    WeatherClient
	rest     WeatherClient
	used     bool
	firstErr error
}

func (c *fallthroughClient) Fetch(ctx context.Context, city string) (weather.Metrics, error) {
	if c.used {
		return c.rest.Fetch(ctx, city)
	}
	c.used = true
	m, err := c.first.Fetch(ctx, city)
	c.firstErr = err
	return m, err
}

type stubRefiner struct {
	enabled  bool
	text     string
	calls    int
	lastOpts advisory.Options
}

func (s *stubRefiner) Enabled() bool { return s.enabled }

func (s *stubRefiner) Refine(ctx context.Context, city string, m weather.Metrics, base string, opts advisory.Options) string {
	s.calls++
	s.lastOpts = opts
	if s.text == "" {
		return base
	}
	return s.text
}
