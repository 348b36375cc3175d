package brokerobs

import (
	"context"

	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/trace"
	"smarttrade-bot/internal/types"
)

// observableBroker wraps a Broker with observability (logging & tracing)
type observableBroker struct {
	broker interfaces.Broker
}

// Compile-time interface check
var _ interfaces.Broker = (*observableBroker)(nil)

// Wrap wraps a broker with observability middleware
func Wrap(broker interfaces.Broker) interfaces.Broker {
	return &observableBroker{
		broker: broker,
	}
}

func (ob *observableBroker) OpenSession(ctx context.Context) (types.Session, error) {
	ctx, span := trace.StartSpan(ctx, "broker.OpenSession")
	defer span.End()

	session, err := ob.broker.OpenSession(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to create broker session", err)
		return session, err
	}

	logger.DebugSkip(ctx, 1, "Broker session created")
	return session, nil
}

func (ob *observableBroker) CloseSession(ctx context.Context, session types.Session) error {
	ctx, span := trace.StartSpan(ctx, "broker.CloseSession")
	defer span.End()

	if err := ob.broker.CloseSession(ctx, session); err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to close broker session", err)
		return err
	}

	logger.DebugSkip(ctx, 1, "Broker session closed")
	return nil
}

// MarketState fetches the market snapshot with observability
func (ob *observableBroker) MarketState(ctx context.Context, epic string, session types.Session) (types.MarketState, error) {
	ctx, span := trace.StartSpan(ctx, "broker.MarketState")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching market state", "epic", epic)

	state, err := ob.broker.MarketState(ctx, epic, session)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch market state", err, "epic", epic)
		return state, err
	}

	logger.DebugSkip(ctx, 1, "Market state fetched", "epic", epic, "status", state.Status, "is_open", state.IsOpen)
	return state, nil
}

func (ob *observableBroker) OpenPositions(ctx context.Context, session types.Session) ([]types.OpenPosition, error) {
	ctx, span := trace.StartSpan(ctx, "broker.OpenPositions")
	defer span.End()

	positions, err := ob.broker.OpenPositions(ctx, session)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to list open positions", err)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Open positions fetched", "count", len(positions))
	return positions, nil
}

// PriceHistory fetches price bars with observability
func (ob *observableBroker) PriceHistory(ctx context.Context, epic, resolution string, max int, session types.Session) ([]types.PriceBar, error) {
	ctx, span := trace.StartSpan(ctx, "broker.PriceHistory")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching historical prices", "epic", epic, "resolution", resolution, "bar_count", max)

	bars, err := ob.broker.PriceHistory(ctx, epic, resolution, max, session)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch historical prices", err, "epic", epic, "resolution", resolution)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Historical prices fetched", "epic", epic, "count", len(bars))
	return bars, nil
}

// OpenPosition places an order with observability
func (ob *observableBroker) OpenPosition(ctx context.Context, req types.OrderRequest, session types.Session) (types.DealReference, error) {
	ctx, span := trace.StartSpan(ctx, "broker.OpenPosition")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Placing order",
		"epic", req.Epic,
		"direction", req.Direction,
		"size", req.Size,
	)

	ref, err := ob.broker.OpenPosition(ctx, req, session)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to place order", err,
			"epic", req.Epic,
			"direction", req.Direction,
			"size", req.Size,
		)
		return ref, err
	}

	logger.InfoSkip(ctx, 1, "Order placed successfully",
		"epic", req.Epic,
		"deal_reference", ref.Reference,
	)
	return ref, nil
}

func (ob *observableBroker) ClosePosition(ctx context.Context, dealID string, session types.Session) (types.DealReference, error) {
	ctx, span := trace.StartSpan(ctx, "broker.ClosePosition")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Closing position", "deal_id", dealID)

	ref, err := ob.broker.ClosePosition(ctx, dealID, session)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to close position", err, "deal_id", dealID)
		return ref, err
	}

	logger.InfoSkip(ctx, 1, "Position closed successfully", "deal_id", dealID, "deal_reference", ref.Reference)
	return ref, nil
}
