// Package dryrun wraps a broker so that reads reach the real API and orders are only logged.
package dryrun

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/types"
)

const referencePrefix = "dryrun-"

type dryRunBroker struct {
	interfaces.Broker
}

var _ interfaces.Broker = (*dryRunBroker)(nil)

func Wrap(broker interfaces.Broker) interfaces.Broker {
	return &dryRunBroker{Broker: broker}
}

func (d *dryRunBroker) OpenPosition(ctx context.Context, req types.OrderRequest, _ types.Session) (types.DealReference, error) {
	ref := types.DealReference{Reference: referencePrefix + uuid.NewString()}
	logger.Info(ctx, "DRY_RUN: position not opened",
		"epic", req.Epic,
		"direction", req.Direction,
		"size", req.Size,
		"stop_distance", req.StopDistance,
		"profit_distance", req.ProfitDistance,
		"deal_reference", ref.Reference,
	)
	return ref, nil
}

func (d *dryRunBroker) ClosePosition(ctx context.Context, dealID string, _ types.Session) (types.DealReference, error) {
	ref := types.DealReference{Reference: referencePrefix + uuid.NewString()}
	logger.Info(ctx, "DRY_RUN: position not closed", "deal_id", dealID, "deal_reference", ref.Reference)
	return ref, nil
}

// IsDryRunReference reports whether ref was produced by a dry-run broker.
func IsDryRunReference(ref types.DealReference) bool {
	return strings.HasPrefix(ref.Reference, referencePrefix)
}
