package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"smarttrade-bot/internal/logger"
	"smarttrade-bot/internal/scheduler"
)

func main() {
	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:  "smarttrade",
		Usage: "Gold trading bot combining technical signals with news-driven forecasts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration `FILE`",
				Value:   "config.yaml",
				Sources: cli.EnvVars("SMARTTRADE_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run one trading cycle and print its result",
				Action: withApp(runAction),
			},
			{
				Name:   "serve",
				Usage:  "Run trading cycles and news collection on their cron schedules until interrupted",
				Action: withApp(serveAction),
			},
			{
				Name:   "analyze",
				Usage:  "Run technical analysis only, without fundamental analysis or orders",
				Action: withApp(analyzeAction),
			},
			{
				Name:  "forecast",
				Usage: "Run fundamental analysis on stored news and print the forecast",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Articles per region to analyze (0 uses fundamental.news_limit)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					limit := int(cmd.Int("limit"))
					return withApp(func(ctx context.Context, a *app) error {
						return forecastAction(ctx, a, limit)
					})(ctx, cmd)
				},
			},
			{
				Name:   "collect-news",
				Usage:  "Fetch and store today's unstored news articles",
				Action: withApp(collectNewsAction),
			},
		},
	}

	err := cmd.Run(ctx, os.Args)
	if err != nil {
		logger.ErrorWithErr(context.Background(), "Command failed", err)
	}
	_ = logger.Shutdown(context.Background())
	if err != nil {
		os.Exit(1)
	}
}

// withApp loads the config, wires the application and releases it after the action returns
func withApp(action func(ctx context.Context, a *app) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(ctx, cmd.String("config"))
		if err != nil {
			return err
		}
		a, err := buildApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()
		return action(ctx, a)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runAction(ctx context.Context, a *app) error {
	res, err := a.cycle.Execute(ctx)
	if res != nil {
		if perr := printJSON(res); perr != nil && err == nil {
			err = perr
		}
	}
	return err
}

func analyzeAction(ctx context.Context, a *app) error {
	res, err := a.controller.Analyze(ctx)
	if res != nil {
		if perr := printJSON(res); perr != nil && err == nil {
			err = perr
		}
	}
	return err
}

func forecastAction(ctx context.Context, a *app, limit int) error {
	forecast, err := a.newFundamental(limit).Analyze(ctx)
	if err != nil {
		return err
	}
	return printJSON(forecast)
}

func collectNewsAction(ctx context.Context, a *app) error {
	saved, err := a.news.Collect(ctx)
	if perr := printJSON(map[string]int{"saved": saved}); perr != nil && err == nil {
		err = perr
	}
	return err
}

func serveAction(ctx context.Context, a *app) error {
	a.compressOldLogs(ctx)

	sched := scheduler.NewScheduler(ctx, a.cycle, a.news, a.notifier)
	if err := sched.Register(a.cfg.Schedule.CycleCron, a.cfg.Schedule.NewsCron); err != nil {
		return err
	}
	if a.cfg.Schedule.RunOnStart {
		sched.RunNewsNow()
		sched.RunCycleNow()
	}

	sched.Start()
	logger.Info(ctx, "Bot started", "epic", a.cfg.Instrument.Epic, "mode", a.cfg.Mode,
		"cycle_cron", a.cfg.Schedule.CycleCron, "news_cron", a.cfg.Schedule.NewsCron)

	<-ctx.Done()
	logger.Info(context.Background(), "Shutting down...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sched.Stop(stopCtx)
	a.compressOldLogs(stopCtx)
	return nil
}
