package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/weather-advisor/internal/domain/weather"
	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
)

const (
	defaultBaseURL = "http://127.0.0.1:8000"
	endpointPath   = "/mcp/"
	maxBodyBytes   = 8 << 20
)

// Client calls tools on a tool-invocation server over JSON-RPC/HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
	newID      func() string
}

// NewClient builds a tool client. The timeout bounds every request.
func NewClient(baseURL string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(base, "/") + endpointPath,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		newID: uuid.NewString,
	}
}

// Fetch returns the current weather metrics for a city via the weather_now tool.
func (c *Client) Fetch(ctx context.Context, city string) (weather.Metrics, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return weather.Metrics{}, apperrors.Wrap(apperrors.CodeInvalidInput, "city cannot be empty", nil)
	}

	payload, err := c.CallTool(ctx, WeatherTool, map[string]any{"city": city})
	if err != nil {
		return weather.Metrics{}, err
	}

	var m weather.Metrics
	if err := json.Unmarshal(payload, &m); err != nil {
		return weather.Metrics{}, apperrors.Wrap(apperrors.CodeMalformed, "structured payload is not a weather record", err)
	}
	if m.City == "" {
		m.City = city
	}
	return m, nil
}

// CallTool invokes a tool and returns its structured payload.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	body, contentType, err := c.post(ctx, Request{
		JSONRPC: jsonRPCVersion,
		ID:      c.newID(),
		Method:  MethodToolsCall,
		Params:  ToolCallParams{Name: name, Arguments: args},
	})
	if err != nil {
		return nil, err
	}

	doc, err := Normalize(body, contentType)
	if err != nil {
		return nil, err
	}
	if doc == nil && IsEventStream(contentType) {
		return nil, apperrors.Wrap(apperrors.CodeMalformed, "event stream carried no decodable data frame", nil)
	}

	payload, _, err := ExtractPayload(doc)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) post(ctx context.Context, rpcReq Request) ([]byte, string, error) {
	encoded, err := json.Marshal(rpcReq)
	if err != nil {
		return nil, "", fmt.Errorf("encode tool request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, "", fmt.Errorf("build tool request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.CodeTransport, "tool request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, "", apperrors.Wrap(apperrors.CodeTransport, fmt.Sprintf("tool request error: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(snippet))), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.CodeTransport, "read tool response", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
