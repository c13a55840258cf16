package collector

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"StockSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price        float64
	Fundamentals *model.Fundamentals
	Headlines    []string
	// Failing symbols make Quote fail, which fails the whole round.
	Failing map[string]bool
	// FailOn makes one call fail for a symbol: "quote", "summary", "news" or "history".
	FailOn map[string]string
	// Delay is applied to every Quote call, to widen race windows in tests.
	Delay time.Duration

	quoteCalls atomic.Int64
}

func (m *MockFetcher) Name() string { return "mock" }

// QuoteCalls reports how many times Quote was called, one per fetch round.
func (m *MockFetcher) QuoteCalls() int64 { return m.quoteCalls.Load() }

func (m *MockFetcher) price() float64 {
	if m.Price == 0 {
		return 100
	}
	return m.Price
}

func (m *MockFetcher) Quote(ctx context.Context, symbol string) (*model.Quote, error) {
	m.quoteCalls.Add(1)
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.Failing[symbol] {
		return nil, fmt.Errorf("mock quote %s: %w", symbol, ErrNoData)
	}
	if err := m.fail("quote", symbol); err != nil {
		return nil, err
	}
	p := m.price()
	return &model.Quote{
		Symbol:           symbol,
		LongName:         symbol + " Holdings Inc.",
		ShortName:        symbol + " Inc",
		Price:            p,
		ChangePercent:    1.2,
		Currency:         "USD",
		FiftyTwoWeekHigh: p * 1.2,
		FiftyDayAverage:  p * 0.98,
	}, nil
}

func (m *MockFetcher) fail(call, symbol string) error {
	if m.FailOn[symbol] == call {
		return fmt.Errorf("mock %s %s: %w", call, symbol, ErrNoData)
	}
	return nil
}

func (m *MockFetcher) Summary(_ context.Context, symbol string, _ []string) (*model.Fundamentals, error) {
	if err := m.fail("summary", symbol); err != nil {
		return nil, err
	}
	if m.Fundamentals != nil {
		f := *m.Fundamentals
		return &f, nil
	}
	return &model.Fundamentals{
		FinancialData: &model.FinancialData{
			ProfitMargins:     0.2,
			ReturnOnEquity:    0.18,
			RevenueGrowth:     0.08,
			TotalRevenue:      1e9,
			GrossProfits:      4e8,
			RecommendationKey: "buy",
		},
		SummaryDetail: &model.SummaryDetail{TrailingPE: 22},
		Profile: &model.Profile{
			Sector:              "Technology",
			Industry:            "Software",
			LongBusinessSummary: "A deterministic company used for development.",
		},
	}, nil
}

func (m *MockFetcher) News(_ context.Context, symbol string, count int) ([]model.RawNews, error) {
	if err := m.fail("news", symbol); err != nil {
		return nil, err
	}
	headlines := m.Headlines
	if headlines == nil {
		headlines = []string{symbol + " posts record quarter", symbol + " names new CFO"}
	}
	news := make([]model.RawNews, 0, len(headlines))
	for i, h := range headlines {
		if count > 0 && i == count {
			break
		}
		news = append(news, model.RawNews{
			Title:     h,
			Link:      fmt.Sprintf("https://example.com/%s/%d", strings.ToLower(symbol), i),
			Publisher: "Mock Wire",
		})
	}
	return news, nil
}

// History returns one close per calendar day in [from, to], rising slowly.
func (m *MockFetcher) History(_ context.Context, symbol string, from, to time.Time) (model.History, error) {
	if err := m.fail("history", symbol); err != nil {
		return nil, err
	}
	days := int(to.Sub(from).Hours() / 24)
	p := m.price()
	history := make(model.History, 0, days+1)
	for i := 0; i <= days; i++ {
		history = append(history, model.PricePoint{
			Date:  from.AddDate(0, 0, i).UTC(),
			Close: p * (1 + float64(i-days/2)*0.001),
		})
	}
	return history, nil
}

func (m *MockFetcher) Search(_ context.Context, query string, count int) ([]model.SearchResult, error) {
	if count == 0 {
		return nil, nil
	}
	sym := strings.ToUpper(strings.TrimSpace(query))
	return []model.SearchResult{{Symbol: sym, Name: sym + " Inc", Exchange: "NASDAQ"}}, nil
}
