package tokens

import (
	"log/slog"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

const fallbackEncoding = "cl100k_base"

// offlineOnce installs the embedded BPE ranks so encodings never download at runtime.
var offlineOnce sync.Once

// Counter estimates prompt sizes with the tokenizer matching the model, falling back to
// cl100k_base for models tiktoken does not know (Gemini) and to a character heuristic
// when no encoding can be loaded.
type Counter struct {
	mu        sync.Mutex
	encodings map[string]*tiktoken.Tiktoken
	load      func(model string) (*tiktoken.Tiktoken, error)
	logger    *slog.Logger
}

// NewCounter builds a counter with lazily loaded encodings.
func NewCounter(logger *slog.Logger) *Counter {
	offlineOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})
	return &Counter{
		encodings: make(map[string]*tiktoken.Tiktoken),
		load:      loadEncoding,
		logger:    logger.With("component", "llm.tokens"),
	}
}

// Count returns the estimated token count of text for model.
func (c *Counter) Count(model, text string) int {
	if text == "" {
		return 0
	}
	enc := c.encoding(model)
	if enc == nil {
		return estimate(text)
	}
	return len(enc.Encode(text, nil, nil))
}

func (c *Counter) encoding(model string) *tiktoken.Tiktoken {
	c.mu.Lock()
	defer c.mu.Unlock()

	if enc, ok := c.encodings[model]; ok {
		return enc
	}
	enc, err := c.load(model)
	if err != nil {
		c.logger.Debug("tokenizer unavailable, using heuristic", "model", model, "error", err)
		enc = nil
	}
	c.encodings[model] = enc
	return enc
}

func loadEncoding(model string) (*tiktoken.Tiktoken, error) {
	if enc, err := tiktoken.EncodingForModel(model); err == nil {
		return enc, nil
	}
	return tiktoken.GetEncoding(fallbackEncoding)
}

// estimate assumes roughly four bytes per token.
func estimate(text string) int {
	return (len(text) + 3) / 4
}
