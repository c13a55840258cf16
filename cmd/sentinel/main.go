// StockSentinel scores stocks from quotes, fundamentals, analyst consensus,
// price history and news, and serves the result through a CLI and a Telegram bot.
package main

import (
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"StockSentinel/internal/analysis"
	"StockSentinel/internal/cache"
	"StockSentinel/internal/collector"
	"StockSentinel/internal/common"
	"StockSentinel/internal/config"
)

const defaultConfigPath = "configs/config.yaml"

var (
	cfg    *config.Config
	logger *common.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "sentinel",
	Short:         "StockSentinel: composite investment signals per ticker",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if !cmd.Flags().Changed("config") {
			if v := os.Getenv("CONFIG_PATH"); v != "" {
				path = v
			}
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Log.Level = level
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
		logger = common.NewLogger(cfg.Log.Level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "config file path (env CONFIG_PATH)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(detailCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(searchCmd)
}

// newService wires fetcher, collector and cache from the loaded config.
func newService() *analysis.Service {
	yahooOpts := []collector.YahooOption{
		collector.WithLogger(logger.Component("yahoo")),
		collector.WithRateLimit(cfg.DataSource.RateLimit),
		collector.WithTimeout(cfg.DataSource.Timeout),
		collector.WithProxy(cfg.Proxy),
	}
	if cfg.DataSource.BaseURL != "" {
		yahooOpts = append(yahooOpts, collector.WithBaseURL(cfg.DataSource.BaseURL))
	}
	var fetcher collector.Fetcher = collector.NewYahooFetcher(yahooOpts...)

	if cfg.DataSource.NewsSource == config.NewsSourceRSS {
		feedClient := &http.Client{Timeout: cfg.DataSource.Timeout}
		if cfg.Proxy != "" {
			if u, err := url.Parse(cfg.Proxy); err == nil {
				feedClient.Transport = &http.Transport{Proxy: http.ProxyURL(u)}
			}
		}
		fetcher = collector.NewRSSNewsFetcher(fetcher,
			collector.WithFeedClient(feedClient),
			collector.WithFeedLogger(logger.Component("rss")),
		)
	}
	logger.Info().Str("source", fetcher.Name()).Msg("data source ready")

	col := collector.NewCollector(fetcher,
		collector.WithNewsCount(cfg.DataSource.NewsCount),
		collector.WithHistoryDays(cfg.DataSource.HistoryDays),
		collector.WithCollectorLogger(logger.Component("collector")),
	)
	c := cache.New(
		cache.WithTTL(cfg.Cache.TTL),
		cache.WithLogger(logger.Component("cache")),
	)
	return analysis.NewService(c, col, logger.Component("analysis"))
}
