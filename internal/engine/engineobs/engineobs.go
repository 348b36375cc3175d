package engineobs

import (
	"context"
	"time"

	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/trace"
	"smarttrade-bot/internal/types"
)

type observableCycle struct {
	cycle interfaces.Cycle
}

var _ interfaces.Cycle = (*observableCycle)(nil)

func Wrap(cycle interfaces.Cycle) interfaces.Cycle {
	return &observableCycle{
		cycle: cycle,
	}
}

func (oc *observableCycle) Execute(ctx context.Context) (*types.CycleResult, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Execute")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting trading cycle")

	result, err := oc.cycle.Execute(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Trading cycle failed", err,
			"cycle_id", cycleID(result),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return result, err
	}

	fields := []any{
		"cycle_id", result.CycleID,
		"epic", result.Epic,
		"outcome", result.Outcome,
		"message", result.Message,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if result.Decision != nil {
		fields = append(fields,
			"final_action", result.Decision.FinalAction,
			"consensus", result.Decision.Consensus,
		)
	}
	if result.ActionTaken != nil {
		fields = append(fields, "action_taken", result.ActionTaken.Action)
	}
	logger.InfoSkip(ctx, 1, "Trading cycle completed", fields...)

	return result, nil
}

func cycleID(result *types.CycleResult) string {
	if result == nil {
		return ""
	}
	return result.CycleID
}
