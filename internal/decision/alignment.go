package decision

import "smarttrade-bot/internal/types"

// anyPosition marks table rows that hold for every position.
const anyPosition types.Position = "*"

type alignmentKey struct {
	action     types.Action
	prediction types.Prediction
	position   types.Position
}

// alignmentTable scores agreement between the technical action and the forecast. Combinations
// that are absent score 0.0, which covers BUY/SELL against the opposite prediction and
// CLOSE/KEEP without an open position.
var alignmentTable = map[alignmentKey]float64{
	{types.ActionBuy, types.PredictionUpward, anyPosition}:    1.0,
	{types.ActionSell, types.PredictionDownward, anyPosition}: 1.0,

	{types.ActionClose, types.PredictionDownward, types.PositionLong}: 0.8,
	{types.ActionClose, types.PredictionStable, types.PositionLong}:   0.8,
	{types.ActionClose, types.PredictionUpward, types.PositionLong}:   0.3,

	{types.ActionClose, types.PredictionUpward, types.PositionShort}:   0.8,
	{types.ActionClose, types.PredictionStable, types.PositionShort}:   0.8,
	{types.ActionClose, types.PredictionDownward, types.PositionShort}: 0.3,

	{types.ActionKeep, types.PredictionUpward, types.PositionLong}:   0.8,
	{types.ActionKeep, types.PredictionStable, types.PositionLong}:   0.8,
	{types.ActionKeep, types.PredictionDownward, types.PositionLong}: 0.3,

	{types.ActionKeep, types.PredictionDownward, types.PositionShort}: 0.8,
	{types.ActionKeep, types.PredictionStable, types.PositionShort}:   0.8,
	{types.ActionKeep, types.PredictionUpward, types.PositionShort}:   0.3,

	{types.ActionBuy, types.PredictionStable, anyPosition}:  0.5,
	{types.ActionSell, types.PredictionStable, anyPosition}: 0.5,
}

// Alignment looks up the agreement score for a combination.
func Alignment(action types.Action, prediction types.Prediction, position types.Position) float64 {
	if v, ok := alignmentTable[alignmentKey{action, prediction, position}]; ok {
		return v
	}
	if v, ok := alignmentTable[alignmentKey{action, prediction, anyPosition}]; ok {
		return v
	}
	return 0.0
}
