package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/types"
)

func openedEvent() types.Event {
	return types.Event{
		Kind:      types.EventPositionOpened,
		Epic:      "GOLD",
		Direction: types.DirectionBuy,
		Size:      0.05,
		Reference: "o_123",
		Time:      time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestFormatEvent(t *testing.T) {
	assert.Equal(t,
		"📈 <b>Position opened</b> | GOLD\n\nDirection: BUY\nSize: 0.05\nReference: <code>o_123</code>\nTime: 2026-10-14 09:30:00 UTC",
		FormatEvent(openedEvent()))

	closed := FormatEvent(types.Event{Kind: types.EventPositionClosed, Epic: "GOLD", Message: "Market closing soon, position force closed"})
	assert.Equal(t, "📉 <b>Position closed</b> | GOLD\n\nMarket closing soon, position force closed", closed)

	assert.Contains(t, FormatEvent(types.Event{Kind: types.EventCycleFailed, Message: "a < b"}), "a &lt; b")
}

func TestTelegramNotify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		var body sendMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "42", body.ChatID)
		assert.Equal(t, "HTML", body.ParseMode)
		assert.Contains(t, body.Text, "Position opened")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	tg := NewTelegram(TelegramConfig{BaseURL: server.URL, BotToken: "TOKEN", ChatID: "42"})
	require.NoError(t, tg.Notify(context.Background(), openedEvent()))
}

func TestTelegramRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	tg := NewTelegram(TelegramConfig{BaseURL: server.URL, BotToken: "TOKEN", ChatID: "42", Retries: 1})
	require.NoError(t, tg.Notify(context.Background(), openedEvent()))
	assert.Equal(t, int32(2), calls.Load())
}

func TestTelegramErrors(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		err := NewTelegram(TelegramConfig{}).Notify(context.Background(), openedEvent())
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
	})

	t.Run("rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
		}))
		defer server.Close()

		err := NewTelegram(TelegramConfig{BaseURL: server.URL, BotToken: "TOKEN", ChatID: "1", Retries: 3}).
			Notify(context.Background(), openedEvent())
		assert.True(t, errors.HasCode(err, errors.ErrCodeNotifyFailed))
	})
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Notify(context.Background(), openedEvent()))
}
