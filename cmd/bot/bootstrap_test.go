package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smarttrade-bot/internal/store"
)

func TestFundamentalOptionsLimitOverride(t *testing.T) {
	cfg := store.Default()

	opts := fundamentalOptions(cfg, 0)
	assert.Equal(t, cfg.Fundamental.NewsLimit, opts.NewsLimit)
	assert.Equal(t, cfg.Fundamental.Timeframe, opts.Timeframe)
	assert.Equal(t, cfg.Fundamental.RiskTolerance, opts.RiskTolerance)
	assert.Equal(t, cfg.Fundamental.PositionSize, opts.PositionSize)

	assert.Equal(t, 10, fundamentalOptions(cfg, 10).NewsLimit)
	assert.Equal(t, cfg.Fundamental.NewsLimit, fundamentalOptions(cfg, -3).NewsLimit)
}

func TestEngineConfigFromStore(t *testing.T) {
	cfg := store.Default()
	cfg.Instrument.Epic = "SILVER"
	cfg.Orders.Amount = 250

	ec := engineConfig(cfg)
	assert.Equal(t, "SILVER", ec.Epic)
	assert.Equal(t, cfg.Instrument.Resolution, ec.Resolution)
	assert.Equal(t, cfg.Instrument.BarCount, ec.BarCount)
	assert.Equal(t, cfg.MarketHours.ForceCloseMinutes, ec.ForceCloseMinutes)
	assert.Equal(t, 250.0, ec.Orders.Amount)
	assert.Equal(t, *cfg.Orders.GuaranteedStop, ec.Orders.GuaranteedStop)
}

func TestDryRunEnvOverridesMode(t *testing.T) {
	cfg := store.Default()
	cfg.Mode = store.ModeLive

	t.Setenv("DRY_RUN", "")
	assert.False(t, dryRun(cfg))

	t.Setenv("DRY_RUN", "true")
	assert.True(t, dryRun(cfg))

	cfg.Mode = store.ModeDryRun
	t.Setenv("DRY_RUN", "false")
	assert.False(t, dryRun(cfg))
}
