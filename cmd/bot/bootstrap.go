package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"smarttrade-bot/internal/broker/brokerobs"
	"smarttrade-bot/internal/broker/capital"
	"smarttrade-bot/internal/broker/dryrun"
	"smarttrade-bot/internal/engine"
	"smarttrade-bot/internal/engine/engineobs"
	"smarttrade-bot/internal/fundamental"
	"smarttrade-bot/internal/interfaces"
	"smarttrade-bot/internal/llm"
	"smarttrade-bot/internal/llm/claude"
	"smarttrade-bot/internal/llm/llmobs"
	"smarttrade-bot/internal/llm/noop"
	"smarttrade-bot/internal/llm/openai"
	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/news"
	"smarttrade-bot/internal/notifier"
	"smarttrade-bot/internal/store"
	"smarttrade-bot/internal/technical"
	"smarttrade-bot/internal/tradelog"
)

// app holds the wired components shared by every subcommand
type app struct {
	cfg        *store.Config
	controller *engine.Controller
	cycle      interfaces.Cycle
	news       *news.Service
	repo       *news.Repository
	journal    *tradelog.Journal
	notifier   interfaces.Notifier
	forecaster interfaces.Forecaster
}

// initializeSystem loads .env and initializes the logger and tracer. Logs go to stderr so
// subcommand output on stdout stays machine readable.
func initializeSystem() error {
	_ = godotenv.Load()

	cfg := logger.LoadConfigFromEnv()
	cfg.Output = os.Stderr
	return logger.InitWithConfig(cfg)
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

func dryRun(cfg *store.Config) bool {
	if v := os.Getenv("DRY_RUN"); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return cfg.Mode == store.ModeDryRun
}

// initializeBroker initializes the Capital.com broker, simulated in DRY_RUN mode, with observability
func initializeBroker(ctx context.Context, cfg *store.Config) interfaces.Broker {
	var brk interfaces.Broker = capital.NewCapital(capital.Params{
		BaseURL:    cfg.Broker.BaseURL,
		APIKey:     os.Getenv("CAPITAL_API_KEY"),
		Identifier: os.Getenv("CAPITAL_IDENTIFIER"),
		Password:   os.Getenv("CAPITAL_PASSWORD"),
		Timeout:    cfg.BrokerTimeout(),
	})

	if dryRun(cfg) {
		logger.Warn(ctx, "Running in DRY_RUN mode - orders will be simulated")
		brk = dryrun.Wrap(brk)
	}

	return brokerobs.Wrap(brk)
}

// initializeForecaster picks the configured model provider and wraps it with observability
func initializeForecaster(ctx context.Context, cfg *store.Config) interfaces.Forecaster {
	params := llm.Params{
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Endpoint:    cfg.LLM.Endpoint,
		Timeout:     cfg.LLMTimeout(),
	}

	var f interfaces.Forecaster
	switch cfg.LLM.Provider {
	case store.ProviderClaude:
		params.APIKey = os.Getenv("CLAUDE_API_KEY")
		f = claude.NewClaudeForecaster(params)
	case store.ProviderOpenAI:
		params.APIKey = os.Getenv("OPENAI_API_KEY")
		f = openai.NewOpenAIForecaster(params)
	default:
		logger.Warn(ctx, "No LLM provider configured - fundamental analysis will never approve an action")
		f = noop.NewNoopForecaster()
	}
	return llmobs.Wrap(f)
}

func initializeNotifier(ctx context.Context, cfg *store.Config) interfaces.Notifier {
	if cfg.Notifier.Provider != store.NotifierTelegram {
		return notifier.Noop{}
	}
	logger.Info(ctx, "Telegram notifications enabled")
	return notifier.NewTelegram(notifier.TelegramConfig{
		BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		ChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		Retries:  cfg.Notifier.Retries,
	})
}

// initializeNews opens the article store and builds the ingest service
func initializeNews(ctx context.Context, cfg *store.Config) (*news.Repository, *news.Service, error) {
	if dir := filepath.Dir(cfg.News.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	repo, err := news.OpenRepository(ctx, cfg.News.DBPath)
	if err != nil {
		return nil, nil, err
	}

	source := news.NewMediastack(news.MediastackConfig{
		BaseURL:           cfg.News.BaseURL,
		APIKey:            os.Getenv("MEDIASTACK_API_KEY"),
		RequestsPerMinute: cfg.News.RequestsPerMinute,
	})

	var opts []news.ServiceOption
	if cfg.News.ScrapeContent {
		opts = append(opts, news.WithScraper(news.NewScraper(0, cfg.PageDelay())))
	}
	svc := news.NewService(source, repo, &news.ServiceConfig{
		PageSize:  cfg.News.Limit,
		PageDelay: cfg.PageDelay(),
	}, opts...)
	return repo, svc, nil
}

func engineConfig(cfg *store.Config) engine.Config {
	return engine.Config{
		Epic:              cfg.Instrument.Epic,
		Resolution:        cfg.Instrument.Resolution,
		BarCount:          cfg.Instrument.BarCount,
		ForceCloseMinutes: cfg.MarketHours.ForceCloseMinutes,
		NoNewEntryMinutes: cfg.MarketHours.NoNewEntryMinutes,
		Orders: engine.OrderConfig{
			Amount:            cfg.Orders.Amount,
			StopDistancePct:   cfg.Orders.StopDistancePct,
			ProfitDistancePct: cfg.Orders.ProfitDistancePct,
			GuaranteedStop:    *cfg.Orders.GuaranteedStop,
		},
	}
}

// buildApp wires every component from cfg
func buildApp(ctx context.Context, cfg *store.Config) (*app, error) {
	repo, newsSvc, err := initializeNews(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var hoursOpts []engine.HoursOption
	if cfg.MarketHours.SplitAtMidnight {
		hoursOpts = append(hoursOpts, engine.WithMidnightSplit())
	}
	hours := engine.DefaultMarketHours(hoursOpts...)
	if schedule := cfg.Weekdays(); schedule != nil {
		if hours, err = engine.ParseMarketHours(schedule, hoursOpts...); err != nil {
			repo.Close()
			return nil, err
		}
	}

	a := &app{
		cfg:      cfg,
		news:     newsSvc,
		repo:     repo,
		journal:  tradelog.New(cfg.TradeLog.Dir),
		notifier: initializeNotifier(ctx, cfg),
	}

	a.forecaster = initializeForecaster(ctx, cfg)
	analyzer := a.newFundamental(0)

	a.controller, err = engine.NewController(engineConfig(cfg), engine.Deps{
		Broker:      initializeBroker(ctx, cfg),
		Fundamental: analyzer,
		Analyzer:    technical.NewAnalyzer(technical.NewClassifier(cfg.Strategy)),
		Notifier:    a.notifier,
		Journal:     a.journal,
		Hours:       hours,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.cycle = engineobs.Wrap(a.controller)
	return a, nil
}

func fundamentalOptions(cfg *store.Config, newsLimit int) fundamental.Options {
	opts := fundamental.Options{
		NewsLimit:     cfg.Fundamental.NewsLimit,
		Timeframe:     cfg.Fundamental.Timeframe,
		RiskTolerance: cfg.Fundamental.RiskTolerance,
		PositionSize:  cfg.Fundamental.PositionSize,
	}
	if newsLimit > 0 {
		opts.NewsLimit = newsLimit
	}
	return opts
}

// newFundamental builds a news analyzer over the article store. A positive newsLimit overrides
// the configured per-region article count.
func (a *app) newFundamental(newsLimit int) *fundamental.Analyzer {
	return fundamental.NewAnalyzer(a.repo, a.forecaster, fundamentalOptions(a.cfg, newsLimit))
}

// compressOldLogs compresses journal files past the retention window
func (a *app) compressOldLogs(ctx context.Context) {
	n, err := a.journal.CompressOlder(a.cfg.TradeLog.RetentionDays)
	if err != nil {
		logger.Warn(ctx, "Failed to compress old logs", "error", err)
		return
	}
	if n > 0 {
		logger.Info(ctx, "Compressed old journal files", "count", n)
	}
}

func (a *app) Close() {
	if a.journal != nil {
		_ = a.journal.Close()
	}
	if a.repo != nil {
		_ = a.repo.Close()
	}
}
