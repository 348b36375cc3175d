package interfaces

import (
	"context"

	"smarttrade-bot/internal/types"
)

type Notifier interface {
	Notify(ctx context.Context, event types.Event) error
}
