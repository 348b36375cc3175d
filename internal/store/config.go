// Package store loads the bot configuration.
package store

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"smarttrade-bot/internal/errors"
	"smarttrade-bot/internal/technical"
)

const (
	ModeDryRun = "DRY_RUN"
	ModeLive   = "LIVE"

	ProviderClaude = "CLAUDE"
	ProviderOpenAI = "OPENAI"
	ProviderNoop   = "NOOP"

	NotifierTelegram = "TELEGRAM"
	NotifierNone     = "NONE"
)

type Config struct {
	Mode   string `yaml:"mode" validate:"oneof=DRY_RUN LIVE"`
	Broker struct {
		BaseURL        string `yaml:"base_url" validate:"required,url"`
		TimeoutSeconds int    `yaml:"timeout_seconds" validate:"gt=0"`
	} `yaml:"broker"`
	Instrument struct {
		Epic       string `yaml:"epic" validate:"required"`
		Resolution string `yaml:"resolution" validate:"oneof=MINUTE MINUTE_5 MINUTE_15 MINUTE_30 HOUR HOUR_4 DAY WEEK"`
		BarCount   int    `yaml:"bar_count" validate:"gte=26,lte=1000"`
	} `yaml:"instrument"`
	Strategy technical.Thresholds `yaml:"strategy"`
	Orders   struct {
		Amount            float64 `yaml:"amount" validate:"gt=0"`
		StopDistancePct   float64 `yaml:"stop_distance_pct" validate:"gt=0"`
		ProfitDistancePct float64 `yaml:"profit_distance_pct" validate:"gt=0"`
		GuaranteedStop    *bool   `yaml:"guaranteed_stop"`
	} `yaml:"orders"`
	MarketHours struct {
		ForceCloseMinutes int `yaml:"force_close_minutes" validate:"gte=0"`
		NoNewEntryMinutes int `yaml:"no_new_entry_minutes" validate:"gte=0"`
		// SplitAtMidnight ends every session at 24:00 instead of continuing into the next day.
		SplitAtMidnight bool `yaml:"split_at_midnight"`
		// Schedule overrides the built-in UTC sessions, keyed by lowercase weekday ("mon").
		Schedule map[string][]string `yaml:"schedule" validate:"omitempty,dive,keys,oneof=sun mon tue wed thu fri sat,endkeys"`
	} `yaml:"market_hours"`
	LLM struct {
		Provider       string  `yaml:"provider" validate:"oneof=CLAUDE OPENAI NOOP"`
		Model          string  `yaml:"model"`
		MaxTokens      int     `yaml:"max_tokens" validate:"gt=0"`
		Temperature    float64 `yaml:"temperature" validate:"gte=0,lte=2"`
		Endpoint       string  `yaml:"endpoint" validate:"omitempty,url"`
		TimeoutSeconds int     `yaml:"timeout_seconds" validate:"gt=0"`
	} `yaml:"llm"`
	News struct {
		BaseURL           string `yaml:"base_url" validate:"required,url"`
		DBPath            string `yaml:"db_path" validate:"required"`
		Limit             int    `yaml:"limit" validate:"gt=0,lte=100"`
		RequestsPerMinute int    `yaml:"requests_per_minute" validate:"gt=0"`
		PageDelayMS       int    `yaml:"page_delay_ms" validate:"gte=0"`
		ScrapeContent     bool   `yaml:"scrape_content"`
	} `yaml:"news"`
	Fundamental struct {
		NewsLimit     int    `yaml:"news_limit" validate:"gt=0"`
		Timeframe     string `yaml:"timeframe" validate:"required"`
		RiskTolerance string `yaml:"risk_tolerance" validate:"required"`
		PositionSize  string `yaml:"position_size" validate:"required"`
	} `yaml:"fundamental"`
	Notifier struct {
		Provider string `yaml:"provider" validate:"oneof=TELEGRAM NONE"`
		Retries  int    `yaml:"retries" validate:"gte=0,lte=10"`
	} `yaml:"notifier"`
	Schedule struct {
		CycleCron  string `yaml:"cycle_cron" validate:"required"`
		NewsCron   string `yaml:"news_cron"`
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	TradeLog struct {
		Dir           string `yaml:"dir" validate:"required"`
		RetentionDays int    `yaml:"retention_days" validate:"gte=0"`
	} `yaml:"tradelog"`
}

var validate = validator.New()

// cronParser accepts the same six-field specs as the scheduler
var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Default returns the configuration used for any field the YAML leaves empty.
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeDryRun
	}
	if c.Broker.BaseURL == "" {
		c.Broker.BaseURL = "https://api-capital.backend-capital.com"
	}
	if c.Broker.TimeoutSeconds == 0 {
		c.Broker.TimeoutSeconds = 30
	}
	if c.Instrument.Epic == "" {
		c.Instrument.Epic = "GOLD"
	}
	if c.Instrument.Resolution == "" {
		c.Instrument.Resolution = "MINUTE"
	}
	if c.Instrument.BarCount == 0 {
		c.Instrument.BarCount = 60
	}
	def := technical.DefaultThresholds()
	if c.Strategy.StopLossPercent == 0 {
		c.Strategy.StopLossPercent = def.StopLossPercent
	}
	if c.Strategy.TakeProfitPercent == 0 {
		c.Strategy.TakeProfitPercent = def.TakeProfitPercent
	}
	if c.Orders.Amount == 0 {
		c.Orders.Amount = 100
	}
	if c.Orders.StopDistancePct == 0 {
		c.Orders.StopDistancePct = 0.5
	}
	if c.Orders.ProfitDistancePct == 0 {
		c.Orders.ProfitDistancePct = 1.0
	}
	if c.Orders.GuaranteedStop == nil {
		yes := true
		c.Orders.GuaranteedStop = &yes
	}
	if c.MarketHours.ForceCloseMinutes == 0 {
		c.MarketHours.ForceCloseMinutes = 5
	}
	if c.MarketHours.NoNewEntryMinutes == 0 {
		c.MarketHours.NoNewEntryMinutes = 60
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderNoop
	}
	c.LLM.Provider = strings.ToUpper(c.LLM.Provider)
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1024
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = 60
	}
	if c.News.BaseURL == "" {
		c.News.BaseURL = "https://api.mediastack.com/v1"
	}
	if c.News.DBPath == "" {
		c.News.DBPath = "data/news.db"
	}
	if c.News.Limit == 0 {
		c.News.Limit = 100
	}
	if c.News.RequestsPerMinute == 0 {
		c.News.RequestsPerMinute = 30
	}
	if c.News.PageDelayMS == 0 {
		c.News.PageDelayMS = 1000
	}
	if c.Fundamental.NewsLimit == 0 {
		c.Fundamental.NewsLimit = 100
	}
	if c.Fundamental.Timeframe == "" {
		c.Fundamental.Timeframe = "Short-term"
	}
	if c.Fundamental.RiskTolerance == "" {
		c.Fundamental.RiskTolerance = "Aggressive"
	}
	if c.Fundamental.PositionSize == "" {
		c.Fundamental.PositionSize = "Small"
	}
	if c.Notifier.Provider == "" {
		c.Notifier.Provider = NotifierNone
	}
	c.Notifier.Provider = strings.ToUpper(c.Notifier.Provider)
	if c.Notifier.Retries == 0 {
		c.Notifier.Retries = 3
	}
	if c.Schedule.CycleCron == "" {
		c.Schedule.CycleCron = "0 * * * * *"
	}
	if c.TradeLog.Dir == "" {
		c.TradeLog.Dir = "logs"
	}
}

// Validate checks field constraints and the rules that span fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}
	if c.MarketHours.NoNewEntryMinutes < c.MarketHours.ForceCloseMinutes {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"market_hours.no_new_entry_minutes (%d) must not be less than force_close_minutes (%d)",
			c.MarketHours.NoNewEntryMinutes, c.MarketHours.ForceCloseMinutes)
	}
	if _, err := cronParser.Parse(c.Schedule.CycleCron); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid schedule.cycle_cron %q", c.Schedule.CycleCron)
	}
	if c.Schedule.NewsCron != "" {
		if _, err := cronParser.Parse(c.Schedule.NewsCron); err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid schedule.news_cron %q", c.Schedule.NewsCron)
		}
	}
	return nil
}

func (c *Config) BrokerTimeout() time.Duration {
	return time.Duration(c.Broker.TimeoutSeconds) * time.Second
}

func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

func (c *Config) PageDelay() time.Duration {
	return time.Duration(c.News.PageDelayMS) * time.Millisecond
}

// Weekdays resolves the market_hours.schedule keys to time.Weekday. Nil means use the built-in schedule.
func (c *Config) Weekdays() map[time.Weekday][]string {
	if len(c.MarketHours.Schedule) == 0 {
		return nil
	}
	days := map[string]time.Weekday{
		"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
		"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
	}
	out := make(map[time.Weekday][]string, len(c.MarketHours.Schedule))
	for k, ranges := range c.MarketHours.Schedule {
		out[days[k]] = ranges
	}
	return out
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "read config %s", path)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "parse config %s", path)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
