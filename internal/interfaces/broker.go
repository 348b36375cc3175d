package interfaces

import (
	"context"

	"smarttrade-bot/internal/types"
)

// Broker is a CFD brokerage reached through an authenticated session.
// Every call after OpenSession carries the returned session tokens.
type Broker interface {
	OpenSession(ctx context.Context) (types.Session, error)
	CloseSession(ctx context.Context, session types.Session) error
	MarketState(ctx context.Context, epic string, session types.Session) (types.MarketState, error)
	OpenPositions(ctx context.Context, session types.Session) ([]types.OpenPosition, error)
	PriceHistory(ctx context.Context, epic, resolution string, max int, session types.Session) ([]types.PriceBar, error)
	OpenPosition(ctx context.Context, req types.OrderRequest, session types.Session) (types.DealReference, error)
	ClosePosition(ctx context.Context, dealID string, session types.Session) (types.DealReference, error)
}
