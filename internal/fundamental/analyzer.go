// Package fundamental turns stored news into a gold price forecast.
package fundamental

import (
	"context"

	"golang.org/x/sync/errgroup"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/trace"
	"smarttrade-bot/internal/types"
)

const (
	DefaultNewsLimit     = 100
	DefaultTimeframe     = "Short-term"
	DefaultRiskTolerance = "Aggressive"
	DefaultPositionSize  = "Small"
)

// Options describe the trading context handed to the forecaster.
type Options struct {
	NewsLimit     int
	Timeframe     string
	RiskTolerance string
	PositionSize  string
}

func DefaultOptions() Options {
	return Options{
		NewsLimit:     DefaultNewsLimit,
		Timeframe:     DefaultTimeframe,
		RiskTolerance: DefaultRiskTolerance,
		PositionSize:  DefaultPositionSize,
	}
}

// Analyzer implements interfaces.FundamentalAnalyzer
type Analyzer struct {
	store      interfaces.ArticleStore
	forecaster interfaces.Forecaster
	opts       Options
}

var _ interfaces.FundamentalAnalyzer = (*Analyzer)(nil)

func NewAnalyzer(store interfaces.ArticleStore, forecaster interfaces.Forecaster, opts Options) *Analyzer {
	def := DefaultOptions()
	if opts.NewsLimit <= 0 {
		opts.NewsLimit = def.NewsLimit
	}
	if opts.Timeframe == "" {
		opts.Timeframe = def.Timeframe
	}
	if opts.RiskTolerance == "" {
		opts.RiskTolerance = def.RiskTolerance
	}
	if opts.PositionSize == "" {
		opts.PositionSize = def.PositionSize
	}
	return &Analyzer{store: store, forecaster: forecaster, opts: opts}
}

// Analyze loads the latest US and global articles concurrently and asks the forecaster for a direction.
func (a *Analyzer) Analyze(ctx context.Context) (types.Forecast, error) {
	ctx, span := trace.StartSpan(ctx, "fundamental-analysis")
	defer span.End()

	var us, global []types.Article
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		us, err = a.store.FindLatestByRegion(gctx, types.RegionUnitedStates, a.opts.NewsLimit)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to load %s news", types.RegionUnitedStates)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		global, err = a.store.FindLatestByRegion(gctx, types.RegionGlobal, a.opts.NewsLimit)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to load %s news", types.RegionGlobal)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return types.Forecast{}, err
	}

	logger.Debug(ctx, "Loaded news for fundamental analysis", "us", len(us), "global", len(global))

	forecast, err := a.forecaster.Forecast(ctx, types.ForecastInput{
		USArticles:     us,
		GlobalArticles: global,
		Timeframe:      a.opts.Timeframe,
		RiskTolerance:  a.opts.RiskTolerance,
		PositionSize:   a.opts.PositionSize,
	})
	if err != nil {
		if errors.GetCode(err) != errors.ErrCodeUnknown {
			return types.Forecast{}, err
		}
		return types.Forecast{}, errors.Wrap(errors.ErrCodeForecastFailed, "forecast failed", err)
	}
	return forecast, nil
}
