// Package analysis serves the read views built from cached bundles.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"StockSentinel/internal/cache"
	"StockSentinel/internal/collector"
	"StockSentinel/internal/common"
	"StockSentinel/internal/model"
)

// ErrNotFound means no data could be produced for the symbol.
var ErrNotFound = errors.New("stock not found")

const (
	descriptionLimit = 150
	minQueryLength   = 2
	searchLimit      = 5
	unknown          = "Unknown"
)

// Service answers Detail, Overview and Search from one cache and one collector.
type Service struct {
	cache     *cache.Cache
	collector *collector.Collector
	logger    *common.Logger
}

// NewService creates a Service. A nil logger discards output.
func NewService(c *cache.Cache, col *collector.Collector, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{cache: c, collector: col, logger: logger}
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func (s *Service) bundle(ctx context.Context, symbol string) (*model.Bundle, error) {
	return s.cache.GetOrFetch(ctx, symbol, s.collector.Collect)
}

// Detail returns the full analysis of symbol.
func (s *Service) Detail(ctx context.Context, symbol string) (*model.StockAnalysis, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrNotFound)
	}

	b, err := s.bundle(ctx, symbol)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			return nil, err
		}
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("detail unavailable")
		return nil, fmt.Errorf("%w: %s", ErrNotFound, symbol)
	}
	return detailView(b), nil
}

// Overview returns one entry per symbol that could be fetched, in input
// order. Symbols are fetched concurrently and failures are dropped.
func (s *Service) Overview(ctx context.Context, symbols []string) []model.OverviewEntry {
	slots := make([]*model.OverviewEntry, len(symbols))

	var wg sync.WaitGroup
	for i, raw := range symbols {
		symbol := normalizeSymbol(raw)
		if symbol == "" {
			continue
		}
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := s.bundle(ctx, symbol)
			if err != nil {
				s.logger.Warn().Err(err).Str("symbol", symbol).Msg("overview entry dropped")
				return
			}
			entry := overviewEntry(symbol, b)
			slots[i] = &entry
		}()
	}
	wg.Wait()

	entries := make([]model.OverviewEntry, 0, len(symbols))
	for _, e := range slots {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	s.logger.Info().Int("requested", len(symbols)).Int("returned", len(entries)).Msg("overview refreshed")
	return entries
}

// Search returns symbol suggestions. Short queries and upstream errors
// yield an empty list.
func (s *Service) Search(ctx context.Context, query string) []model.SearchResult {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < minQueryLength {
		return []model.SearchResult{}
	}
	results, err := s.collector.Fetcher().Search(ctx, query, searchLimit)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("search failed")
		return []model.SearchResult{}
	}
	if results == nil {
		return []model.SearchResult{}
	}
	return results
}

func detailView(b *model.Bundle) *model.StockAnalysis {
	q := b.Quote
	f := b.Fundamentals

	symbol := q.Symbol
	if symbol == "" {
		symbol = b.Symbol
	}

	var fin model.Financials
	if fd := f.FinancialData; fd != nil {
		fin.Revenue = fd.TotalRevenue
		fin.GrossProfit = fd.GrossProfits
	}
	if sd := f.SummaryDetail; sd != nil {
		fin.PERatio = sd.TrailingPE
	}
	fin.Recommendation = b.Verdict()

	return &model.StockAnalysis{
		Symbol:        symbol,
		Name:          firstNonEmpty(q.LongName, q.ShortName, b.Symbol),
		Price:         q.Price,
		ChangePercent: q.ChangePercent,
		Currency:      q.Currency,
		Industry:      industry(f.Profile, q.ChangePercent),
		Financials:    fin,
		News:          slices.Clone(b.News),
		Market: model.Market{
			History: historyPoints(b.History),
			Signal:  marketSignal(b.RSI),
			RSI:     b.RSI,
		},
		Verdict: b.Verdict(),
	}
}

func overviewEntry(symbol string, b *model.Bundle) model.OverviewEntry {
	q := b.Quote
	return model.OverviewEntry{
		Symbol:   symbol,
		Name:     firstNonEmpty(q.ShortName, q.LongName, symbol),
		Price:    q.Price,
		Change:   q.ChangePercent,
		Currency: q.Currency,
		Strategy: b.Verdict(),
	}
}

func industry(p *model.Profile, change float64) model.Industry {
	sector, name, summary := unknown, unknown, ""
	if p != nil {
		sector = firstNonEmpty(p.Sector, unknown)
		name = firstNonEmpty(p.Industry, unknown)
		summary = p.LongBusinessSummary
	}

	trend := model.TrendDown
	if change > 0 {
		trend = model.TrendUp
	}
	return model.Industry{
		Name:        sector + " - " + name,
		Description: truncate(summary),
		Trend:       trend,
	}
}

// truncate keeps the first descriptionLimit runes and always appends an
// ellipsis, except for an empty summary.
func truncate(summary string) string {
	if summary == "" {
		return ""
	}
	r := []rune(summary)
	if len(r) > descriptionLimit {
		r = r[:descriptionLimit]
	}
	return string(r) + "..."
}

func historyPoints(h model.History) []model.HistoryPoint {
	points := make([]model.HistoryPoint, len(h))
	for i, p := range h {
		points[i] = model.HistoryPoint{Date: p.Date.Format(time.DateOnly), Close: p.Close}
	}
	return points
}

func marketSignal(rsi float64) model.MarketSignal {
	switch {
	case rsi < 30:
		return model.MarketBuy
	case rsi > 70:
		return model.MarketSell
	default:
		return model.MarketHold
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
