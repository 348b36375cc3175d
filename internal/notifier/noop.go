package notifier

import (
	"context"

	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/types"
)

// Noop logs events instead of delivering them
type Noop struct{}

var _ interfaces.Notifier = Noop{}

func (Noop) Notify(ctx context.Context, event types.Event) error {
	logger.Debug(ctx, "Notification suppressed", "kind", event.Kind, "epic", event.Epic, "reference", event.Reference)
	return nil
}
