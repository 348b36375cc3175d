package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/llm"
	"smarttrade-bot/internal/types"
)

func TestForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))

		var body messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-test", body.Model)
		assert.Equal(t, llm.SystemPrompt, body.System)
		require.Len(t, body.Messages, 1)
		assert.Equal(t, "user", body.Messages[0].Role)

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"` +
			"```json\\n{\\\"prediction\\\":\\\"UPWARD\\\",\\\"confidence\\\":80,\\\"reason\\\":\\\"Weak dollar\\\"}\\n```" +
			`"}],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	f := NewClaudeForecaster(llm.Params{APIKey: "test-key", Model: "claude-test", Endpoint: server.URL})
	got, err := f.Forecast(context.Background(), types.ForecastInput{Timeframe: "Short-term"})
	require.NoError(t, err)
	assert.Equal(t, types.Forecast{Prediction: types.PredictionUpward, Confidence: 80, Reason: "Weak dollar"}, got)
}

func TestForecastWithoutTextContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"tool_use"}]}`))
	}))
	defer server.Close()

	f := NewClaudeForecaster(llm.Params{APIKey: "test-key", Endpoint: server.URL})
	_, err := f.Forecast(context.Background(), types.ForecastInput{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMalformedResponse))
}

func TestForecastRequiresKey(t *testing.T) {
	_, err := NewClaudeForecaster(llm.Params{}).Forecast(context.Background(), types.ForecastInput{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func TestForecastClientErrorIsNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":"invalid model"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	f := NewClaudeForecaster(llm.Params{APIKey: "test-key", Endpoint: server.URL})
	_, err := f.Forecast(context.Background(), types.ForecastInput{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeForecastFailed))
	assert.Equal(t, 1, calls)
}
