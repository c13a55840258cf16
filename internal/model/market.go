package model

import "time"

// PricePoint is a single daily close.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// History holds daily closes ordered oldest to newest.
type History []PricePoint

// Closes returns the closing prices in order.
func (h History) Closes() []float64 {
	closes := make([]float64, len(h))
	for i, p := range h {
		closes[i] = p.Close
	}
	return closes
}

// Quote is a point-in-time snapshot of a symbol's market data.
type Quote struct {
	Symbol           string
	LongName         string
	ShortName        string
	Price            float64
	ChangePercent    float64 // also the daily percent change
	Currency         string
	FiftyTwoWeekHigh float64
	FiftyDayAverage  float64
}

// SearchResult is a symbol suggestion returned by the provider search.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exch"`
}
