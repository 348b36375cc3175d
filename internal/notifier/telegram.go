// Package notifier delivers trading events to humans.
package notifier

import (
	"context"
	"strings"
	"time"

	"smarttrade-bot/internal/api"
	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/trace"
	"smarttrade-bot/internal/types"
)

const DefaultTelegramURL = "https://api.telegram.org"

// TelegramConfig configures the Telegram notifier
type TelegramConfig struct {
	BaseURL  string
	BotToken string
	ChatID   string
	Retries  int
	Timeout  time.Duration
}

// Telegram sends events through the Telegram Bot API
type Telegram struct {
	client *api.Client
	token  string
	chatID string
	retry  *api.RetryConfig
}

var _ interfaces.Notifier = (*Telegram)(nil)

func NewTelegram(cfg TelegramConfig) *Telegram {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultTelegramURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	return &Telegram{
		client: api.NewClient(
			api.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
			api.WithTimeout(cfg.Timeout),
		),
		token:  cfg.BotToken,
		chatID: cfg.ChatID,
		retry: &api.RetryConfig{
			MaxAttempts: cfg.Retries + 1,
			InitialWait: 1 * time.Second,
			MaxWait:     8 * time.Second,
		},
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Notify sends the formatted event to the configured chat
func (t *Telegram) Notify(ctx context.Context, event types.Event) error {
	return t.Send(ctx, FormatEvent(event))
}

// Send posts a raw HTML message
func (t *Telegram) Send(ctx context.Context, text string) error {
	ctx, span := trace.StartSpan(ctx, "telegram-send")
	defer span.End()

	if t.token == "" || t.chatID == "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required")
	}

	req := api.NewRequest("POST", "/bot"+t.token+"/sendMessage").
		WithContext(ctx).
		WithBody(sendMessageRequest{ChatID: t.chatID, Text: text, ParseMode: "HTML"})

	resp, err := t.client.DoWithRetry(req, t.retry)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotifyFailed, "telegram send failed", err)
	}

	var out sendMessageResponse
	if err := resp.ParseJSON(&out); err != nil {
		return errors.Wrap(errors.ErrCodeMalformedResponse, "invalid telegram response", err)
	}
	if !out.OK {
		return errors.Newf(errors.ErrCodeNotifyFailed, "telegram rejected message: %s", out.Description)
	}
	return nil
}
