package llmobs

import (
	"context"
	"time"

	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/trace"
	"smarttrade-bot/internal/types"
)

// observableForecaster wraps a Forecaster with observability (logging & tracing)
type observableForecaster struct {
	forecaster interfaces.Forecaster
}

// Compile-time interface check
var _ interfaces.Forecaster = (*observableForecaster)(nil)

// Wrap wraps a forecaster with observability middleware
func Wrap(forecaster interfaces.Forecaster) interfaces.Forecaster {
	return &observableForecaster{
		forecaster: forecaster,
	}
}

// Forecast requests a fundamental forecast with observability
func (of *observableForecaster) Forecast(ctx context.Context, in types.ForecastInput) (types.Forecast, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Forecast")
	defer span.End()

	start := time.Now()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting fundamental forecast",
		"us_articles", len(in.USArticles),
		"global_articles", len(in.GlobalArticles),
		"timeframe", in.Timeframe,
	)

	forecast, err := of.forecaster.Forecast(ctx, in)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to get fundamental forecast", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return types.Forecast{}, err
	}

	logger.InfoSkip(ctx, 1, "Fundamental forecast received",
		"prediction", forecast.Prediction,
		"confidence", forecast.Confidence,
		"reason", forecast.Reason,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return forecast, nil
}
