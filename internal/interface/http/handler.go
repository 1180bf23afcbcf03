package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yanqian/weather-advisor/internal/domain/forecast"
	"github.com/yanqian/weather-advisor/internal/domain/weather"
	"github.com/yanqian/weather-advisor/internal/infra/config"
	"github.com/yanqian/weather-advisor/internal/infra/mcp"
	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
)

const (
	serverName    = "weather"
	serverVersion = "1.0.0"
)

// WeatherNowInput is the weather_now argument object.
type WeatherNowInput struct {
	City string `json:"city" jsonschema:"city name, e.g. Seoul"`
}

// ToolHandler serves the streamable HTTP tool endpoint.
type ToolHandler struct {
	weatherSvc forecast.Service
	server     *mcpsdk.Server
	transport  http.Handler
	logger     *slog.Logger
}

// NewToolHandler registers weather_now and builds the HTTP transport. Sessions are
// stateless so a bare tools/call works without a prior initialize. With streaming
// disabled replies are plain JSON instead of a single SSE event.
func NewToolHandler(cfg *config.Config, weatherSvc forecast.Service, logger *slog.Logger) *ToolHandler {
	h := &ToolHandler{
		weatherSvc: weatherSvc,
		logger:     logger.With("component", "http.tools"),
	}

	h.server = mcpsdk.NewServer(&mcpsdk.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcpsdk.AddTool(h.server, &mcpsdk.Tool{
		Name:        mcp.WeatherTool,
		Description: "Current weather for a city: temperature, apparent temperature, wind, UV index, precipitation and humidity.",
	}, h.weatherNow)

	h.transport = mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
		return h.server
	}, &mcpsdk.StreamableHTTPOptions{
		Stateless:    true,
		JSONResponse: !cfg.HTTP.StreamResponses,
	})
	return h
}

// ServeHTTP implements http.Handler.
func (h *ToolHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.transport.ServeHTTP(w, r)
}

// weatherNow returns the metrics as structured content and the summary as text.
// Errors surface to the caller as tool results flagged isError.
func (h *ToolHandler) weatherNow(ctx context.Context, _ *mcpsdk.CallToolRequest, in WeatherNowInput) (*mcpsdk.CallToolResult, weather.Metrics, error) {
	city := strings.TrimSpace(in.City)
	if city == "" {
		return nil, weather.Metrics{}, errors.New("city is required")
	}

	report, err := h.weatherSvc.Current(ctx, city)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeLocationNotFound) {
			h.logger.Info("unknown city", "city", city)
		} else {
			h.logger.Error("weather lookup failed", "city", city, "error", err)
		}
		return nil, weather.Metrics{}, err
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: report.Summary}},
	}, report.Metrics, nil
}
