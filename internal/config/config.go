package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// News sources accepted by data_source.news_source.
const (
	NewsSourceYahoo = "yahoo"
	NewsSourceRSS   = "rss"
)

// DefaultSymbols is the overview universe used when none is configured.
var DefaultSymbols = []string{
	// US tech
	"AAPL", "NVDA", "TSLA", "MSFT", "GOOGL", "AMZN", "META", "AMD", "AVGO", "NFLX",
	// Hong Kong
	"0700.HK", "9988.HK", "3690.HK", "1810.HK", "1024.HK", "9618.HK", "9888.HK", "0388.HK",
	"0941.HK", "1211.HK", "2318.HK", "1398.HK", "0939.HK", "3968.HK", "2269.HK", "0005.HK",
	// China A-shares
	"600519.SS", "300750.SZ", "000858.SZ", "601318.SS", "600036.SS", "002594.SZ",
	"600900.SS", "601012.SS", "000001.SZ", "601857.SS",
	// Global
	"V", "MA", "DIS", "NKE", "CRM", "ORCL", "ASML", "TSM",
}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `yaml:"chat_id" envconfig:"TELEGRAM_CHAT_ID"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL     string        `yaml:"base_url" envconfig:"YAHOO_BASE_URL"`
		NewsSource  string        `yaml:"news_source" envconfig:"NEWS_SOURCE"`
		RateLimit   int           `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
		Timeout     time.Duration `yaml:"timeout" envconfig:"HTTP_TIMEOUT"`
		NewsCount   int           `yaml:"news_count" envconfig:"NEWS_COUNT"`
		HistoryDays int           `yaml:"history_days" envconfig:"HISTORY_DAYS"`
	} `yaml:"data_source"`
	Cache struct {
		TTL time.Duration `yaml:"ttl" envconfig:"CACHE_TTL"`
	} `yaml:"cache"`
	Overview struct {
		Symbols []string `yaml:"symbols" envconfig:"OVERVIEW_SYMBOLS"`
	} `yaml:"overview"`
	Schedule struct {
		OverviewCron string `yaml:"overview_cron" envconfig:"CRON_OVERVIEW"`
	} `yaml:"schedule"`
	Log struct {
		Level string `yaml:"level" envconfig:"LOG_LEVEL"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy" envconfig:"HTTPS_PROXY"`
}

// DefaultRateLimit is the Yahoo request cap per second when none is configured.
const DefaultRateLimit = 5

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// Preset rather than defaulted: an explicit rate_limit of 0 disables the cap.
	cfg.DataSource.RateLimit = DefaultRateLimit

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.NewsSource == "" {
		c.DataSource.NewsSource = NewsSourceYahoo
	}
	if c.DataSource.Timeout == 0 {
		c.DataSource.Timeout = 30 * time.Second
	}
	if c.DataSource.NewsCount == 0 {
		c.DataSource.NewsCount = 5
	}
	if c.DataSource.HistoryDays == 0 {
		c.DataSource.HistoryDays = 30
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 10 * time.Second
	}
	if len(c.Overview.Symbols) == 0 {
		c.Overview.Symbols = append([]string(nil), DefaultSymbols...)
	}
	if c.Schedule.OverviewCron == "" {
		c.Schedule.OverviewCron = "0 */15 * * * *"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// TelegramEnabled reports whether both bot credentials are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// cronParser matches cron.WithSeconds.
var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	switch c.DataSource.NewsSource {
	case NewsSourceYahoo, NewsSourceRSS:
	default:
		return fmt.Errorf("data_source.news_source must be %q or %q, got %q", NewsSourceYahoo, NewsSourceRSS, c.DataSource.NewsSource)
	}
	if c.DataSource.RateLimit < 0 {
		return fmt.Errorf("data_source.rate_limit must not be negative")
	}
	if c.DataSource.Timeout <= 0 {
		return fmt.Errorf("data_source.timeout must be positive")
	}
	if c.DataSource.NewsCount <= 0 {
		return fmt.Errorf("data_source.news_count must be positive")
	}
	if c.DataSource.HistoryDays <= 0 {
		return fmt.Errorf("data_source.history_days must be positive")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	if len(c.Overview.Symbols) == 0 {
		return fmt.Errorf("overview.symbols must not be empty")
	}
	if _, err := cronParser.Parse(c.Schedule.OverviewCron); err != nil {
		return fmt.Errorf("schedule.overview_cron: %w", err)
	}
	return nil
}
