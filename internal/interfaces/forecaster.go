package interfaces

import (
	"context"

	"smarttrade-bot/internal/types"
)

// Forecaster turns a batch of news articles into a price direction forecast.
type Forecaster interface {
	Forecast(ctx context.Context, in types.ForecastInput) (types.Forecast, error)
}

// FundamentalAnalyzer produces a forecast from whatever news is currently stored.
type FundamentalAnalyzer interface {
	Analyze(ctx context.Context) (types.Forecast, error)
}
