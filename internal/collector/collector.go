package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/common"
	"StockSentinel/internal/model"
	"StockSentinel/internal/sentiment"
	"StockSentinel/internal/strategy"
)

const (
	DefaultNewsCount   = 5
	DefaultHistoryDays = 30
)

// Collector runs one fetch round for a symbol: four concurrent upstream
// calls, then classification, RSI and scoring.
type Collector struct {
	fetcher     Fetcher
	newsCount   int
	historyDays int
	now         func() time.Time
	logger      *common.Logger
}

// Option configures a Collector.
type Option func(*Collector)

func WithNewsCount(n int) Option {
	return func(c *Collector) { c.newsCount = n }
}

func WithHistoryDays(days int) Option {
	return func(c *Collector) { c.historyDays = days }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) { c.now = now }
}

func WithCollectorLogger(logger *common.Logger) Option {
	return func(c *Collector) { c.logger = logger }
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, opts ...Option) *Collector {
	c := &Collector{
		fetcher:     fetcher,
		newsCount:   DefaultNewsCount,
		historyDays: DefaultHistoryDays,
		now:         time.Now,
		logger:      common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetcher returns the upstream fetcher.
func (c *Collector) Fetcher() Fetcher { return c.fetcher }

// Collect fetches everything for symbol and builds a Bundle. If any of the
// four upstream calls fails the round fails and nothing is returned.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.Bundle, error) {
	// History is requested by calendar date, ending at today's 00:00 UTC.
	now := c.now().UTC()
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -c.historyDays)

	var (
		quote   *model.Quote
		summary *model.Fundamentals
		rawNews []model.RawNews
		history model.History
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q, err := c.fetcher.Quote(gctx, symbol)
		if err != nil {
			return fmt.Errorf("fetch quote: %w", err)
		}
		if q == nil {
			return fmt.Errorf("fetch quote %s: %w", symbol, ErrNoData)
		}
		quote = q
		return nil
	})
	g.Go(func() error {
		s, err := c.fetcher.Summary(gctx, symbol, SummaryModules)
		if err != nil {
			return fmt.Errorf("fetch summary: %w", err)
		}
		if s == nil {
			return fmt.Errorf("fetch summary %s: %w", symbol, ErrNoData)
		}
		summary = s
		return nil
	})
	g.Go(func() error {
		n, err := c.fetcher.News(gctx, symbol, c.newsCount)
		if err != nil {
			return fmt.Errorf("fetch news: %w", err)
		}
		rawNews = n
		return nil
	})
	g.Go(func() error {
		h, err := c.fetcher.History(gctx, symbol, from, to)
		if err != nil {
			return fmt.Errorf("fetch history: %w", err)
		}
		history = h
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	news := sentiment.Classify(rawNews)
	rsi := calculator.CalculateRSI(calculator.LastN(history.Closes(), calculator.RSIWindow))
	signal := strategy.Evaluate(strategy.Input{
		Fundamentals: *summary,
		Quote:        *quote,
		News:         news,
		RSI:          &rsi,
	})

	b := &model.Bundle{
		Symbol:       symbol,
		RoundID:      uuid.NewString(),
		FetchedAt:    c.now(),
		Quote:        *quote,
		Fundamentals: *summary,
		News:         news,
		History:      history,
		RSI:          rsi,
		Signal:       *signal,
	}

	c.logger.Debug().
		Str("symbol", symbol).
		Str("round", b.RoundID).
		Float64("score", signal.TotalScore).
		Str("verdict", string(signal.Verdict)).
		Msg("fetch round complete")
	return b, nil
}
