package grading

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Completer is the model transport used by the engine. Implementations
// return the raw reply text, untrusted and unparsed.
type Completer interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

// ClientConfig configures the chat-completions client. The credential is
// passed in explicitly; nothing is read from the environment here.
type ClientConfig struct {
	APIKey      string
	BaseURL     string // OpenAI-compatible endpoint, e.g. https://api.mistral.ai/v1
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float32
	HTTPClient  *http.Client
}

const (
	defaultModel     = "mistral-medium"
	defaultTimeout   = 30 * time.Second
	defaultMaxTokens = 1000
	// Low temperature keeps grading consistent across calls and the reply
	// short enough to parse cheaply.
	defaultTemperature = 0.1
)

// Client sends grading prompts to an OpenAI-compatible chat endpoint.
type Client struct {
	api *openai.Client
	cfg ClientConfig
}

// NewClient validates the credential up front: a missing key is
// ErrNotConfigured, not a silent default.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}

	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		cc.HTTPClient = cfg.HTTPClient
	}
	return &Client{api: openai.NewClientWithConfig(cc), cfg: cfg}, nil
}

// Complete sends the prompt and returns the raw reply. The call is bounded
// by the configured timeout; expiry surfaces as a TransportError. There are
// no retries here.
func (c *Client) Complete(ctx context.Context, p Prompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.System},
			{Role: openai.ChatMessageRoleUser, Content: p.User},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &UpstreamFormatError{}
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	// Cheap sanity gate before the parse fallbacks get involved.
	low := strings.ToLower(raw)
	if !strings.Contains(low, "score") && !strings.Contains(low, "feedback") {
		return "", &UpstreamFormatError{Raw: raw}
	}
	return raw, nil
}
