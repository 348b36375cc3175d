// Package technical turns an indicator set and the current position into a trading action.
package technical

import (
	"fmt"

	"github.com/moznion/go-optional"

	"smarttrade-bot/internal/types"
)

const (
	rsiOversold    = 30.0
	rsiOverbought  = 70.0
	nearSupport    = 1.005
	nearResistance = 0.995
)

// Thresholds are the exit thresholds in percent units.
type Thresholds struct {
	StopLossPercent   float64 `yaml:"stop_loss_pct" validate:"gt=0"`
	TakeProfitPercent float64 `yaml:"take_profit_pct" validate:"gt=0"`
}

// DefaultThresholds exits at a 0.5% loss or a 1% gain.
func DefaultThresholds() Thresholds {
	return Thresholds{StopLossPercent: 0.5, TakeProfitPercent: 1.0}
}

// Classifier is stateless; the same inputs always produce the same action and reason.
type Classifier struct {
	thresholds Thresholds
}

func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{thresholds: t}
}

// Thresholds returns the configured exit thresholds.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// Classify picks entry rules when flat and exit rules when a position is open.
func (c *Classifier) Classify(position types.Position, entryPrice optional.Option[float64], inds types.IndicatorSet) (types.Action, string) {
	if position == types.PositionNone {
		return c.entry(inds)
	}
	return c.exit(position, entryPrice, inds)
}

func (c *Classifier) entry(inds types.IndicatorSet) (types.Action, string) {
	rsi, hist, ok := momentum(inds)
	if !ok {
		return types.ActionKeep, "No clear entry signal"
	}
	price := inds.CurrentPrice
	if rsi < rsiOversold && hist > 0 && price <= inds.Support*nearSupport {
		return types.ActionBuy, "RSI oversold, MACD bullish, price near support"
	}
	if rsi > rsiOverbought && hist < 0 && price >= inds.Resistance*nearResistance {
		return types.ActionSell, "RSI overbought, MACD bearish, price near resistance"
	}
	return types.ActionKeep, "No clear entry signal"
}

func (c *Classifier) exit(position types.Position, entryPrice optional.Option[float64], inds types.IndicatorSet) (types.Action, string) {
	if !EntryKnown(entryPrice) {
		return types.ActionKeep, "No entry price available"
	}
	pl := ProfitLossPercent(position, entryPrice.Unwrap(), inds.CurrentPrice)

	if pl <= -c.thresholds.StopLossPercent {
		return types.ActionClose, fmt.Sprintf("Stop-loss triggered: %.2f%%", pl)
	}
	if pl >= c.thresholds.TakeProfitPercent {
		return types.ActionClose, fmt.Sprintf("Take-profit triggered: %.2f%%", pl)
	}

	if rsi, hist, ok := momentum(inds); ok {
		if position == types.PositionLong && rsi > rsiOverbought && hist < 0 {
			return types.ActionClose, "RSI overbought and MACD bearish reversal"
		}
		if position == types.PositionShort && rsi < rsiOversold && hist > 0 {
			return types.ActionClose, "RSI oversold and MACD bullish reversal"
		}
	}
	return types.ActionKeep, "Position maintained, no exit signal"
}

// EntryKnown reports whether a usable entry price is present.
func EntryKnown(entryPrice optional.Option[float64]) bool {
	return entryPrice.IsSome() && entryPrice.Unwrap() > 0
}

// ProfitLossPercent is the signed return of the position in percent. It is 0 when flat.
func ProfitLossPercent(position types.Position, entry, current float64) float64 {
	switch position {
	case types.PositionLong:
		return (current - entry) / entry * 100
	case types.PositionShort:
		return (entry - current) / entry * 100
	}
	return 0
}

func momentum(inds types.IndicatorSet) (rsi, hist float64, ok bool) {
	if inds.RSI.IsNone() || inds.MACD.IsNone() {
		return 0, 0, false
	}
	return inds.RSI.Unwrap(), inds.MACD.Unwrap().Histogram, true
}
