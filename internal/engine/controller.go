package engine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"

	"smarttrade-bot/internal/decision"
	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/technical"
	"smarttrade-bot/internal/types"
)

// Config is the static configuration of a cycle.
type Config struct {
	Epic              string
	Resolution        string
	BarCount          int
	ForceCloseMinutes int
	NoNewEntryMinutes int
	Orders            OrderConfig
}

// DefaultConfig trades spot gold on one-minute bars.
func DefaultConfig() Config {
	return Config{
		Epic:              "GOLD",
		Resolution:        "MINUTE",
		BarCount:          60,
		ForceCloseMinutes: 5,
		NoNewEntryMinutes: 60,
		Orders: OrderConfig{
			Amount:            100,
			StopDistancePct:   0.5,
			ProfitDistancePct: 1.0,
			GuaranteedStop:    true,
		},
	}
}

// Deps are the collaborators of a Controller. Notifier, Journal, Hours and Clock are optional.
type Deps struct {
	Broker      interfaces.Broker
	Fundamental interfaces.FundamentalAnalyzer
	Analyzer    *technical.Analyzer
	Fuser       *decision.Fuser
	Notifier    interfaces.Notifier
	Journal     interfaces.Journal
	Hours       *MarketHours
	Clock       func() time.Time
}

// Controller runs trading cycles. It holds no state between cycles.
type Controller struct {
	cfg         Config
	broker      interfaces.Broker
	fundamental interfaces.FundamentalAnalyzer
	analyzer    *technical.Analyzer
	fuser       *decision.Fuser
	journal     interfaces.Journal
	hours       *MarketHours
	now         func() time.Time
	exec        *orderExecutor
}

var _ interfaces.Cycle = (*Controller)(nil)

func NewController(cfg Config, deps Deps) (*Controller, error) {
	if deps.Broker == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "broker is required")
	}
	if deps.Fundamental == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "fundamental analyzer is required")
	}
	if cfg.Epic == "" || cfg.BarCount <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "invalid instrument %q with %d bars", cfg.Epic, cfg.BarCount)
	}
	if deps.Analyzer == nil {
		deps.Analyzer = technical.NewAnalyzer(technical.NewClassifier(technical.DefaultThresholds()))
	}
	if deps.Fuser == nil {
		deps.Fuser = decision.NewFuser()
	}
	if deps.Hours == nil {
		deps.Hours = DefaultMarketHours()
	}
	if deps.Clock == nil {
		deps.Clock = func() time.Time { return time.Now().UTC() }
	}

	return &Controller{
		cfg:         cfg,
		broker:      deps.Broker,
		fundamental: deps.Fundamental,
		analyzer:    deps.Analyzer,
		fuser:       deps.Fuser,
		journal:     deps.Journal,
		hours:       deps.Hours,
		now:         deps.Clock,
		exec:        newOrderExecutor(deps.Broker, deps.Notifier, cfg.Epic, cfg.Orders, deps.Clock),
	}, nil
}

// Execute runs one full cycle. Gated cycles return a GATED result and a nil error.
func (c *Controller) Execute(ctx context.Context) (*types.CycleResult, error) {
	return c.withSession(ctx, c.runCycle)
}

// Analyze runs technical analysis only. It never calls the fundamental analyzer or places orders.
func (c *Controller) Analyze(ctx context.Context) (*types.CycleResult, error) {
	return c.withSession(ctx, c.runAnalysis)
}

type stage func(ctx context.Context, session types.Session, res *types.CycleResult) error

// withSession opens a broker session, runs fn and always closes the session,
// even when fn panics.
func (c *Controller) withSession(ctx context.Context, fn stage) (res *types.CycleResult, err error) {
	res = &types.CycleResult{
		CycleID:   uuid.NewString(),
		Epic:      c.cfg.Epic,
		StartedAt: c.now(),
	}
	ctx = withCycleID(ctx, res.CycleID)

	logger.Info(ctx, "Creating broker session", "cycle_id", res.CycleID)
	session, err := c.broker.OpenSession(ctx)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeSessionFailed, "failed to open broker session", err)
		c.fail(res, err)
		c.finish(ctx, res)
		return res, err
	}

	defer func() {
		closeErr := c.broker.CloseSession(context.WithoutCancel(ctx), session)

		if r := recover(); r != nil {
			logger.Error(ctx, "Cycle panicked", "cycle_id", res.CycleID, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			err = errors.Newf(errors.ErrCodeCyclePanic, "cycle panicked: %v", r)
			c.fail(res, err)
		}

		if closeErr != nil {
			logger.ErrorWithErr(ctx, "Failed to close broker session", closeErr, "cycle_id", res.CycleID)
			if err == nil {
				err = errors.Wrap(errors.ErrCodeSessionFailed, "failed to close broker session", closeErr)
				c.fail(res, err)
			}
		} else {
			logger.Info(ctx, "Session closed successfully", "cycle_id", res.CycleID)
		}
		c.finish(ctx, res)
	}()

	if err = fn(ctx, session, res); err != nil {
		c.fail(res, err)
	}
	return res, err
}

func (c *Controller) runCycle(ctx context.Context, session types.Session, res *types.CycleResult) error {
	existing, open, err := c.inspect(ctx, session, res)
	if err != nil || !open {
		return err
	}

	now := c.now()
	if existing != nil && c.hours.WillCloseWithin(now, c.cfg.ForceCloseMinutes) {
		logger.Risk(ctx, c.cfg.Epic, "FORCE_CLOSE", "minutes_threshold", c.cfg.ForceCloseMinutes, "deal_id", existing.DealID)
		taken, err := c.exec.closePosition(ctx, *existing, session, true)
		if err != nil {
			return err
		}
		res.ActionTaken = taken
		res.Outcome = types.OutcomeCompleted
		res.Message = "Market closing soon, position force closed"
		return nil
	}
	if existing == nil && c.hours.WillCloseWithin(now, c.cfg.NoNewEntryMinutes) {
		logger.Info(ctx, "Market closing soon, not opening new positions", "minutes_threshold", c.cfg.NoNewEntryMinutes)
		c.gate(res, "Market closing soon, no new positions allowed")
		return nil
	}

	technicalResult, ok, err := c.technical(ctx, session, existing, res)
	if err != nil || !ok {
		return err
	}

	position := types.PositionNone
	if existing != nil {
		position = existing.Position()
	}
	if existing == nil && !technicalResult.Action.IsEntry() {
		logger.Info(ctx, "Skipping fundamental analysis - no strong technical signal",
			"has_position", false,
			"technical_action", technicalResult.Action,
		)
		res.Outcome = types.OutcomeCompleted
		return nil
	}

	logger.Info(ctx, "Engaging fundamental analysis", "has_position", existing != nil, "technical_action", technicalResult.Action)
	forecast, err := c.fundamental.Analyze(ctx)
	if err != nil {
		return fmt.Errorf("fundamental analysis: %w", err)
	}
	res.FundamentalAnalysis = &forecast

	result := c.fuser.Decide(technicalResult.Action, forecast, position)
	res.Decision = &result
	logger.Decision(ctx, c.cfg.Epic, string(result.FinalAction), result.Consensus, result.Reasoning,
		"should_take_action", result.ShouldTakeAction,
		"position", position,
	)

	if result.ShouldTakeAction && result.FinalAction != types.ActionKeep {
		taken, err := c.exec.execute(ctx, result.FinalAction, existing, technicalResult.Indicators.CurrentPrice, session)
		if err != nil {
			return err
		}
		res.ActionTaken = taken
	} else {
		logger.Info(ctx, "No action taken", "should_take_action", result.ShouldTakeAction, "final_action", result.FinalAction)
	}

	res.Outcome = types.OutcomeCompleted
	return nil
}

func (c *Controller) runAnalysis(ctx context.Context, session types.Session, res *types.CycleResult) error {
	existing, open, err := c.inspect(ctx, session, res)
	if err != nil || !open {
		return err
	}
	if _, ok, err := c.technical(ctx, session, existing, res); err != nil || !ok {
		return err
	}
	res.Outcome = types.OutcomeCompleted
	return nil
}

// inspect checks the market and finds the existing position. open is false when the
// cycle was gated on a closed market.
func (c *Controller) inspect(ctx context.Context, session types.Session, res *types.CycleResult) (existing *types.OpenPosition, open bool, err error) {
	logger.Info(ctx, "Checking if the market is open", "epic", c.cfg.Epic)
	market, err := c.broker.MarketState(ctx, c.cfg.Epic, session)
	if err != nil {
		return nil, false, fmt.Errorf("market state: %w", err)
	}
	res.IsMarketOpen = market.IsOpen
	if !market.IsOpen {
		logger.Info(ctx, "Market is not open, not taking any actions", "epic", c.cfg.Epic, "status", market.Status)
		c.gate(res, "Market is closed, no actions taken")
		return nil, false, nil
	}

	positions, err := c.broker.OpenPositions(ctx, session)
	if err != nil {
		return nil, true, fmt.Errorf("open positions: %w", err)
	}
	res.Position = types.PositionNone
	for i := range positions {
		if positions[i].Epic == c.cfg.Epic {
			existing = &positions[i]
			res.Position = existing.Position()
			logger.Info(ctx, "Found existing position for epic", "epic", c.cfg.Epic, "deal_id", existing.DealID, "direction", existing.Direction)
			break
		}
	}
	if existing == nil {
		logger.Info(ctx, "No existing position found for epic", "epic", c.cfg.Epic)
	}
	return existing, true, nil
}

// technical fetches prices and runs the analyzer. ok is false when the cycle was gated on
// too little price data.
func (c *Controller) technical(ctx context.Context, session types.Session, existing *types.OpenPosition, res *types.CycleResult) (types.TechnicalAnalysisResult, bool, error) {
	bars, err := c.broker.PriceHistory(ctx, c.cfg.Epic, c.cfg.Resolution, c.cfg.BarCount, session)
	if err != nil {
		return types.TechnicalAnalysisResult{}, false, fmt.Errorf("price history: %w", err)
	}
	res.Timeframe = c.cfg.Resolution
	res.PricesCount = len(bars)
	if len(bars) < c.cfg.BarCount {
		logger.Info(ctx, "Insufficient price data, not taking any actions", "expected", c.cfg.BarCount, "received", len(bars))
		c.insufficient(res, c.cfg.BarCount, len(bars))
		return types.TechnicalAnalysisResult{}, false, nil
	}

	position := types.PositionNone
	entry := optional.None[float64]()
	if existing != nil {
		position = existing.Position()
		entry = optional.Some(existing.Level)
	}

	result, err := c.analyzer.Analyze(bars, position, entry)
	if err != nil {
		if ide, ok := errors.AsInsufficientDataError(err); ok {
			c.insufficient(res, ide.Required, ide.Actual)
			return types.TechnicalAnalysisResult{}, false, nil
		}
		return types.TechnicalAnalysisResult{}, false, err
	}
	res.TechnicalAnalysis = &result
	logger.Info(ctx, "Technical analysis completed", "action", result.Action, "reason", result.Reason, "price", result.Indicators.CurrentPrice)
	return result, true, nil
}

func (c *Controller) gate(res *types.CycleResult, msg string) {
	res.Outcome = types.OutcomeGated
	res.Message = msg
}

func (c *Controller) insufficient(res *types.CycleResult, expected, received int) {
	c.gate(res, "Insufficient price data, no actions taken")
	res.Expected = expected
	res.Received = received
}

func (c *Controller) fail(res *types.CycleResult, err error) {
	res.Outcome = types.OutcomeFailed
	res.Error = err.Error()
}

func (c *Controller) finish(ctx context.Context, res *types.CycleResult) {
	res.FinishedAt = c.now()
	if c.journal == nil {
		return
	}
	if err := c.journal.RecordCycle(ctx, res); err != nil {
		logger.ErrorWithErr(ctx, "Failed to record cycle", err, "cycle_id", res.CycleID)
	}
}

type cycleIDKey struct{}

func withCycleID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, cycleIDKey{}, id)
}

// CycleID returns the id of the cycle running on ctx, if any.
func CycleID(ctx context.Context) string {
	id, _ := ctx.Value(cycleIDKey{}).(string)
	return id
}
