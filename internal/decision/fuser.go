// Package decision fuses a technical action with a fundamental forecast.
package decision

import (
	"fmt"
	"strconv"

	"smarttrade-bot/internal/types"
)

const (
	TechnicalWeight         = 0.4
	FundamentalBaseWeight   = 0.6
	DecisionThreshold       = 0.7
	HighConfidenceThreshold = 75.0
)

// Fuser is stateless and safe for concurrent use.
type Fuser struct{}

func NewFuser() *Fuser {
	return &Fuser{}
}

// Decide weighs the technical action against the forecast for the current position.
func (f *Fuser) Decide(technical types.Action, forecast types.Forecast, position types.Position) types.DecisionResult {
	fundamentalWeight := FundamentalBaseWeight * (forecast.Confidence / 100)
	alignment := Alignment(technical, forecast.Prediction, position)
	consensus := TechnicalWeight + fundamentalWeight*alignment
	shouldTakeAction := consensus >= DecisionThreshold

	return types.DecisionResult{
		ShouldTakeAction:  shouldTakeAction,
		Consensus:         consensus,
		FundamentalWeight: fundamentalWeight,
		Alignment:         alignment,
		FinalAction:       finalAction(technical, forecast, position, shouldTakeAction),
		Reasoning:         reasoning(technical, forecast, fundamentalWeight, alignment, consensus, shouldTakeAction),
	}
}

func finalAction(technical types.Action, forecast types.Forecast, position types.Position, approved bool) types.Action {
	if !approved {
		return types.ActionKeep
	}
	if forecast.Confidence < HighConfidenceThreshold {
		return technical
	}
	switch forecast.Prediction {
	case types.PredictionUpward:
		switch position {
		case types.PositionNone:
			return types.ActionBuy
		case types.PositionShort:
			return types.ActionClose
		}
	case types.PredictionDownward:
		switch position {
		case types.PositionNone:
			return types.ActionSell
		case types.PositionLong:
			return types.ActionClose
		}
	}
	return types.ActionKeep
}

func reasoning(technical types.Action, forecast types.Forecast, weight, alignment, consensus float64, approved bool) string {
	outcome := "Action rejected - insufficient consensus."
	if approved {
		outcome = "Action approved."
	}
	return fmt.Sprintf(
		"Technical analysis suggests %s and fundamental analysis predicts %s with %s%% confidence. "+
			"Fundamental weight: %.0f%%, Alignment: %.0f%%, Consensus: %.0f%% (threshold: %.0f%%). %s",
		technical,
		forecast.Prediction,
		strconv.FormatFloat(forecast.Confidence, 'f', -1, 64),
		weight*100,
		alignment*100,
		consensus*100,
		DecisionThreshold*100,
		outcome,
	)
}
