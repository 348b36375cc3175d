package openai

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
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"
	DefaultModel    = "gpt-4o-mini"
)

type OpenAIForecaster struct {
	p      llm.Params
	client *api.Client
}

var _ interfaces.Forecaster = (*OpenAIForecaster)(nil)

func NewOpenAIForecaster(p llm.Params) *OpenAIForecaster {
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
	return &OpenAIForecaster{
		p: p,
		client: api.NewClient(
			api.WithTimeout(p.Timeout),
			api.WithHeader("Authorization", "Bearer "+p.APIKey),
		),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (f *OpenAIForecaster) Forecast(ctx context.Context, in types.ForecastInput) (types.Forecast, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	if f.p.APIKey == "" {
		return types.Forecast{}, errors.New(errors.ErrCodeInvalidConfiguration, "OPENAI_API_KEY missing")
	}

	prompt, err := llm.RenderPrompt(in)
	if err != nil {
		return types.Forecast{}, err
	}

	resp, err := f.client.POST(ctx, f.p.Endpoint, chatRequest{
		Model: f.p.Model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Temperature: f.p.Temperature,
		MaxTokens:   f.p.MaxTokens,
	})
	if err != nil {
		return types.Forecast{}, errors.Wrap(errors.ErrCodeForecastFailed, "openai request failed", err)
	}

	var r chatResponse
	if err := resp.ParseJSON(&r); err != nil {
		return types.Forecast{}, errors.Wrap(errors.ErrCodeMalformedResponse, "invalid openai response", err)
	}
	if len(r.Choices) == 0 {
		return types.Forecast{}, errors.New(errors.ErrCodeMalformedResponse, "no choices")
	}

	return llm.ParseForecast(r.Choices[0].Message.Content)
}
