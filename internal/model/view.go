package model

// StockAnalysis is the detail view of one symbol.
type StockAnalysis struct {
	Symbol        string     `json:"symbol"`
	Name          string     `json:"name"`
	Price         float64    `json:"price"`
	ChangePercent float64    `json:"changePercent"`
	Currency      string     `json:"currency,omitempty"`
	Industry      Industry   `json:"industry"`
	Financials    Financials `json:"financials"`
	News          []NewsItem `json:"news"`
	Market        Market     `json:"market"`
	Verdict       Verdict    `json:"verdict"`
}

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

type Industry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Trend       Trend  `json:"trend"`
}

type Financials struct {
	Revenue        float64 `json:"revenue"`
	GrossProfit    float64 `json:"grossProfit"`
	PERatio        float64 `json:"peRatio"`
	Recommendation Verdict `json:"recommendation"`
}

// MarketSignal is the RSI-only buy/sell/hold hint shown next to the chart.
type MarketSignal string

const (
	MarketBuy  MarketSignal = "buy"
	MarketSell MarketSignal = "sell"
	MarketHold MarketSignal = "hold"
)

type Market struct {
	History []HistoryPoint `json:"history"`
	Signal  MarketSignal   `json:"signal"`
	RSI     float64        `json:"rsi"`
}

// HistoryPoint is a chart-ready close keyed by YYYY-MM-DD.
type HistoryPoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// OverviewEntry is the compact dashboard row for one symbol.
type OverviewEntry struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Change   float64 `json:"change"`
	Currency string  `json:"currency,omitempty"`
	Strategy Verdict `json:"strategy"`
}
