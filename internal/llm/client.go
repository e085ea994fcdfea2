package llm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Options configures a Client. APIKey is required by the completion service
// but is not checked here.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
	Logger      *slog.Logger
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	logger      *slog.Logger
}

// NewClient builds a client for the endpoint at opts.BaseURL.
func NewClient(opts Options) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		client:      openai.NewClientWithConfig(cfg),
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		logger:      logger,
	}
}

// NewRequest attaches the persona and generation budget to an instruction.
func (c *Client) NewRequest(instruction string) Request {
	return Request{
		System:      systemPrompt,
		User:        instruction,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}
}

// Complete sends the instruction and returns the first choice's text.
// Any failure is logged and reported as "".
func (c *Client) Complete(ctx context.Context, instruction string) string {
	req := c.NewRequest(instruction)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		c.logger.Error("completion request failed", "model", c.model, "status", statusCode(err), "error", err)
		return ""
	}

	if len(resp.Choices) == 0 {
		c.logger.Error("completion returned no choices", "model", c.model, "id", resp.ID)
		return ""
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		c.logger.Error("completion returned empty content", "model", c.model, "id", resp.ID,
			"finish_reason", resp.Choices[0].FinishReason)
		return ""
	}

	c.logger.Debug("completion received", "model", c.model, "id", resp.ID,
		"completion_tokens", resp.Usage.CompletionTokens)
	return content
}

func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
