package types

import "github.com/moznion/go-optional"

// Position is the engine's belief about open exposure on the instrument.
type Position string

const (
	PositionNone  Position = "NONE"
	PositionLong  Position = "LONG"
	PositionShort Position = "SHORT"
)

// Action is a trading action. BUY and SELL are only valid from NONE, CLOSE only from LONG or SHORT.
type Action string

const (
	ActionBuy   Action = "BUY"
	ActionSell  Action = "SELL"
	ActionKeep  Action = "KEEP"
	ActionClose Action = "CLOSE"
)

// ValidFrom reports whether the action may be taken from the given position.
func (a Action) ValidFrom(p Position) bool {
	switch a {
	case ActionBuy, ActionSell:
		return p == PositionNone
	case ActionClose:
		return p == PositionLong || p == PositionShort
	case ActionKeep:
		return true
	}
	return false
}

// IsEntry reports whether the action opens a position.
func (a Action) IsEntry() bool {
	return a == ActionBuy || a == ActionSell
}

type MACD struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

type BollingerBands struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// IndicatorSet is computed for the most recent bar. Indicators without enough history are None.
type IndicatorSet struct {
	RSI               optional.Option[float64]        `json:"rsi"`
	MACD              optional.Option[MACD]           `json:"macd"`
	SMA20             optional.Option[float64]        `json:"sma20"`
	EMA12             optional.Option[float64]        `json:"ema12"`
	EMA26             optional.Option[float64]        `json:"ema26"`
	BollingerBands    optional.Option[BollingerBands] `json:"bollingerBands"`
	ATR14             optional.Option[float64]        `json:"atr14"`
	AverageVolume     float64                         `json:"averageVolume"`
	VolumeSpike       bool                            `json:"volumeSpike"`
	Support           float64                         `json:"support"`
	Resistance        float64                         `json:"resistance"`
	CurrentPrice      float64                         `json:"currentPrice"`
	ProfitLossPercent optional.Option[float64]        `json:"profitLossPercent"`
}

type TechnicalAnalysisResult struct {
	Action     Action       `json:"action"`
	Reason     string       `json:"reason"`
	Indicators IndicatorSet `json:"indicators"`
}

// Prediction is the direction of a fundamental forecast.
type Prediction string

const (
	PredictionUpward   Prediction = "UPWARD"
	PredictionStable   Prediction = "STABLE"
	PredictionDownward Prediction = "DOWNWARD"
)

// Forecast is an externally produced fundamental outlook.
type Forecast struct {
	Prediction Prediction `json:"prediction" validate:"required,oneof=UPWARD STABLE DOWNWARD"`
	Confidence float64    `json:"confidence" validate:"gte=0,lte=100"`
	Reason     string     `json:"reason" validate:"required"`
}

// ForecastInput is the news the forecaster reasons over.
type ForecastInput struct {
	USArticles     []Article `json:"usArticles"`
	GlobalArticles []Article `json:"globalArticles"`
	Timeframe      string    `json:"timeframe"`
	RiskTolerance  string    `json:"riskTolerance"`
	PositionSize   string    `json:"positionSize"`
}

type DecisionResult struct {
	ShouldTakeAction  bool    `json:"shouldTakeAction"`
	Consensus         float64 `json:"consensus"`
	FundamentalWeight float64 `json:"fundamentalWeight"`
	Alignment         float64 `json:"alignment"`
	FinalAction       Action  `json:"finalAction"`
	Reasoning         string  `json:"reasoning"`
}
