package noop

import (
	"context"

	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/types"
)

// NoopForecaster is used when no model provider is configured
type NoopForecaster struct{}

var _ interfaces.Forecaster = (*NoopForecaster)(nil)

// NewNoopForecaster returns a forecaster that always predicts STABLE with zero confidence
func NewNoopForecaster() *NoopForecaster {
	return &NoopForecaster{}
}

// Forecast never approves an action: zero confidence gives zero fundamental weight
func (f *NoopForecaster) Forecast(ctx context.Context, in types.ForecastInput) (types.Forecast, error) {
	logger.Debug(ctx, "Noop forecaster called - always returns STABLE",
		"us_articles", len(in.USArticles),
		"global_articles", len(in.GlobalArticles),
	)
	return types.Forecast{
		Prediction: types.PredictionStable,
		Confidence: 0,
		Reason:     "fundamental analysis disabled",
	}, nil
}
