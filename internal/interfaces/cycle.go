package interfaces

import (
	"context"

	"smarttrade-bot/internal/types"
)

// Cycle runs one complete trading evaluation.
type Cycle interface {
	Execute(ctx context.Context) (*types.CycleResult, error)
}

// Journal records cycle outcomes for later review.
type Journal interface {
	RecordCycle(ctx context.Context, result *types.CycleResult) error
}
