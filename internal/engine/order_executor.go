package engine

import (
	"context"
	"time"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/types"
)

// OrderConfig sizes new positions.
type OrderConfig struct {
	Amount            float64
	StopDistancePct   float64
	ProfitDistancePct float64
	GuaranteedStop    bool
}

// orderExecutor makes the single order-affecting broker call of a cycle and announces it.
type orderExecutor struct {
	broker   interfaces.Broker
	notifier interfaces.Notifier
	orders   OrderConfig
	epic     string
	now      func() time.Time
}

func newOrderExecutor(broker interfaces.Broker, notifier interfaces.Notifier, epic string, orders OrderConfig, now func() time.Time) *orderExecutor {
	return &orderExecutor{
		broker:   broker,
		notifier: notifier,
		orders:   orders,
		epic:     epic,
		now:      now,
	}
}

// execute carries out action against the existing position, if any.
func (oe *orderExecutor) execute(ctx context.Context, action types.Action, existing *types.OpenPosition, price float64, session types.Session) (*types.ExecutedAction, error) {
	switch action {
	case types.ActionClose:
		if existing == nil {
			return nil, errors.New(errors.ErrCodeInvalidAction, "cannot close without an open position")
		}
		return oe.closePosition(ctx, *existing, session, false)
	case types.ActionBuy, types.ActionSell:
		if existing != nil {
			return nil, errors.Newf(errors.ErrCodeInvalidAction, "cannot %s while position %s is open", action, existing.DealID)
		}
		return oe.openPosition(ctx, action, price, session)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidAction, "action %s is not executable", action)
	}
}

func (oe *orderExecutor) openPosition(ctx context.Context, action types.Action, price float64, session types.Session) (*types.ExecutedAction, error) {
	size, err := PositionSize(oe.orders.Amount, price)
	if err != nil {
		return nil, err
	}

	direction := types.DirectionBuy
	if action == types.ActionSell {
		direction = types.DirectionSell
	}
	req := types.OrderRequest{
		Epic:           oe.epic,
		Direction:      direction,
		Size:           size,
		GuaranteedStop: oe.orders.GuaranteedStop,
		StopDistance:   PriceDistance(price, oe.orders.StopDistancePct),
		ProfitDistance: PriceDistance(price, oe.orders.ProfitDistancePct),
	}

	logger.Info(ctx, "Opening position",
		"epic", req.Epic,
		"direction", req.Direction,
		"size", req.Size,
		"stop_distance", req.StopDistance,
		"profit_distance", req.ProfitDistance,
	)

	ref, err := oe.broker.OpenPosition(ctx, req, session)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to open position", err,
			"epic", req.Epic,
			"direction", req.Direction,
			"size", req.Size,
		)
		return nil, err
	}
	logger.Trade(ctx, oe.epic, string(action), size, ref.Reference)

	oe.notify(ctx, types.Event{
		Kind:      types.EventPositionOpened,
		Epic:      oe.epic,
		Direction: direction,
		Size:      size,
		Reference: ref.Reference,
	})

	return &types.ExecutedAction{
		Action:        action,
		Direction:     direction,
		Size:          size,
		DealReference: ref,
	}, nil
}

func (oe *orderExecutor) closePosition(ctx context.Context, pos types.OpenPosition, session types.Session, forced bool) (*types.ExecutedAction, error) {
	logger.Info(ctx, "Closing position", "deal_id", pos.DealID, "direction", pos.Direction, "size", pos.Size, "forced", forced)

	ref, err := oe.broker.ClosePosition(ctx, pos.DealID, session)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to close position", err, "deal_id", pos.DealID)
		return nil, err
	}
	logger.Trade(ctx, oe.epic, string(types.ActionClose), pos.Size, ref.Reference, "deal_id", pos.DealID, "forced", forced)

	msg := ""
	if forced {
		msg = "Market closing soon, position force closed"
	}
	oe.notify(ctx, types.Event{
		Kind:      types.EventPositionClosed,
		Epic:      oe.epic,
		Direction: pos.Direction,
		Size:      pos.Size,
		Reference: ref.Reference,
		Message:   msg,
	})

	return &types.ExecutedAction{
		Action:        types.ActionClose,
		Direction:     pos.Direction,
		Size:          pos.Size,
		DealID:        pos.DealID,
		DealReference: ref,
		Forced:        forced,
	}, nil
}

// notify never fails the cycle.
func (oe *orderExecutor) notify(ctx context.Context, event types.Event) {
	if oe.notifier == nil {
		return
	}
	event.Time = oe.now()
	if err := oe.notifier.Notify(ctx, event); err != nil {
		logger.ErrorWithErr(ctx, "Failed to send notification", err, "kind", event.Kind, "epic", event.Epic)
	}
}
