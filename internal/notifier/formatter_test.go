package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"StockSentinel/internal/model"
)

func TestFormatOverview(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 15, 0, 0, time.UTC)
	entries := []model.OverviewEntry{
		{Symbol: "AAPL", Name: "Apple", Price: 190.5, Change: 1.25, Currency: "USD", Strategy: model.VerdictBuy},
		{Symbol: "T", Name: "AT&T", Price: 17, Change: -0.5, Currency: "USD", Strategy: model.VerdictHold},
		{Symbol: "MSFT", Name: "Microsoft", Price: 410, Change: 0, Currency: "USD", Strategy: model.VerdictBuy},
	}

	msg := FormatOverview(entries, at)
	assert.Contains(t, msg, "2025-06-01 09:15")
	assert.Contains(t, msg, "<b>AAPL</b> Apple: 190.50 USD (+1.25%) BUY")
	assert.Contains(t, msg, "AT&amp;T")
	assert.True(t, strings.HasSuffix(msg, "BUY 2 | HOLD 1"))

	assert.Contains(t, FormatOverview(nil, at), "No data available.")
}

func TestFormatDetail(t *testing.T) {
	a := &model.StockAnalysis{
		Symbol:        "NVDA",
		Name:          "NVIDIA Corporation",
		Price:         120.5,
		ChangePercent: -2.1,
		Currency:      "USD",
		Industry:      model.Industry{Name: "Technology - Semiconductors", Trend: model.TrendDown},
		Financials:    model.Financials{Revenue: 60.9e9, GrossProfit: 44.3e9, PERatio: 65.2},
		News: []model.NewsItem{
			{Title: "Chip stocks drop", Publisher: "Reuters", Sentiment: model.SentimentNegative},
		},
		Market:  model.Market{RSI: 28, Signal: model.MarketBuy},
		Verdict: model.VerdictAccumulate,
	}

	msg := FormatDetail(a)
	assert.Contains(t, msg, "<b>NVDA</b> NVIDIA Corporation")
	assert.Contains(t, msg, "Price: 120.50 USD (-2.10%)")
	assert.Contains(t, msg, "Revenue: 60.9B | Gross profit: 44.3B | P/E: 65.2")
	assert.Contains(t, msg, "RSI: 28 (buy)")
	assert.Contains(t, msg, "Verdict: ACCUMULATE")
	assert.Contains(t, msg, "[-] Chip stocks drop (Reuters)")
}

func TestFormatSearch(t *testing.T) {
	msg := FormatSearch("apple", []model.SearchResult{{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "NASDAQ"}})
	assert.Contains(t, msg, "• <b>AAPL</b> Apple Inc. [NASDAQ]")
	assert.Contains(t, FormatSearch("zz", nil), "No symbols found")
}

func TestHumanize(t *testing.T) {
	cases := map[float64]string{
		0:      "0",
		950:    "950",
		1500:   "1.5K",
		2.5e6:  "2.5M",
		383e9:  "383.0B",
		3.1e12: "3.1T",
		-4.2e9: "-4.2B",
	}
	for in, want := range cases {
		assert.Equal(t, want, humanize(in), "humanize(%v)", in)
	}
}
