package claude

import (
	"context"
	"time"

	"smarttrade-bot/internal/api"
	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/llm"
	"smarttrade-bot/internal/trace"
	"smarttrade-bot/internal/types"
)

const (
	// DefaultEndpoint is the public Anthropic messages endpoint.
	DefaultEndpoint = "https://api.anthropic.com/v1/messages"
	DefaultModel    = "claude-opus-4-1"
	apiVersion      = "2023-06-01"
)

// ClaudeForecaster implements the Forecaster interface using the Anthropic Messages API
type ClaudeForecaster struct {
	p      llm.Params
	client *api.Client
}

var _ interfaces.Forecaster = (*ClaudeForecaster)(nil)

// NewClaudeForecaster creates a new Claude-based forecaster
func NewClaudeForecaster(p llm.Params) *ClaudeForecaster {
	if p.Endpoint == "" {
		p.Endpoint = DefaultEndpoint
	}
	if p.Model == "" {
		p.Model = DefaultModel
	}
	if p.MaxTokens <= 0 {
		p.MaxTokens = 1024
	}
	if p.Timeout <= 0 {
		p.Timeout = 60 * time.Second
	}
	return &ClaudeForecaster{
		p: p,
		client: api.NewClient(
			api.WithTimeout(p.Timeout),
			api.WithHeader("x-api-key", p.APIKey),
			api.WithHeader("anthropic-version", apiVersion),
		),
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	System      string    `json:"system,omitempty"`
	Messages    []message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// Forecast asks Claude for a gold price direction given the articles
func (f *ClaudeForecaster) Forecast(ctx context.Context, in types.ForecastInput) (types.Forecast, error) {
	// Create span for LLM API call
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	if f.p.APIKey == "" {
		return types.Forecast{}, errors.New(errors.ErrCodeInvalidConfiguration, "CLAUDE_API_KEY missing")
	}

	prompt, err := llm.RenderPrompt(in)
	if err != nil {
		return types.Forecast{}, err
	}

	req := api.NewRequest("POST", f.p.Endpoint).
		WithContext(ctx).
		WithBody(messagesRequest{
			Model:       f.p.Model,
			MaxTokens:   f.p.MaxTokens,
			Temperature: f.p.Temperature,
			System:      prompt.System,
			Messages:    []message{{Role: "user", Content: prompt.User}},
		})

	resp, err := f.client.DoWithRetry(req, api.DefaultRetryConfig())
	if err != nil {
		return types.Forecast{}, errors.Wrap(errors.ErrCodeForecastFailed, "claude request failed", err)
	}

	var out messagesResponse
	if err := resp.ParseJSON(&out); err != nil {
		return types.Forecast{}, errors.Wrap(errors.ErrCodeMalformedResponse, "invalid claude response", err)
	}

	// The first text block carries the answer
	for _, block := range out.Content {
		if block.Type == "text" {
			return llm.ParseForecast(block.Text)
		}
	}
	return types.Forecast{}, errors.Newf(errors.ErrCodeMalformedResponse, "no text content in claude response: %s", resp.String())
}
