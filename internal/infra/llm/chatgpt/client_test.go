package chatgpt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-advisor/internal/domain/advisory"
)

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("  ", "", time.Second)
	require.EqualError(t, err, "chatgpt api key cannot be empty")
}

func TestCompleterSendsSystemAndUser(t *testing.T) {
	var got ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" Wrap up warm. "},"finish_reason":"stop"}],"usage":{"prompt_tokens":90,"completion_tokens":5,"total_tokens":95}}`))
	}))
	defer srv.Close()

	client, err := NewClient("sk-test", srv.URL+"/v1/", time.Second)
	require.NoError(t, err)

	out, err := NewCompleter(client).Complete(context.Background(), advisory.CompletionRequest{
		Model:       "gpt-4o-mini",
		System:      "be brief",
		User:        "City: Oslo",
		Temperature: 0.4,
	})
	require.NoError(t, err)
	require.Equal(t, "Wrap up warm.", out.Text)
	require.Equal(t, 95, out.Usage.TotalTokens)

	require.Equal(t, "gpt-4o-mini", got.Model)
	require.Equal(t, float32(0.4), got.Temperature)
	require.Equal(t, []Message{{Role: "system", Content: "be brief"}, {Role: "user", Content: "City: Oslo"}}, got.Messages)
}

func TestCompleterErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer sk-bad" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"invalid key"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	bad, err := NewClient("sk-bad", srv.URL, time.Second)
	require.NoError(t, err)
	_, err = NewCompleter(bad).Complete(context.Background(), advisory.CompletionRequest{})
	require.ErrorContains(t, err, "status=401")

	empty, err := NewClient("sk-ok", srv.URL, time.Second)
	require.NoError(t, err)
	_, err = NewCompleter(empty).Complete(context.Background(), advisory.CompletionRequest{})
	require.EqualError(t, err, "chatgpt returned no choices")
}
