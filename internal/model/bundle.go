package model

import "time"

// Bundle is the unit stored in the cache: everything fetched and derived for
// one symbol in one fetch round. A Bundle is never modified once built.
type Bundle struct {
	Symbol       string
	RoundID      string
	FetchedAt    time.Time
	Quote        Quote
	Fundamentals Fundamentals
	News         []NewsItem
	History      History
	RSI          float64
	Signal       Signal
}

// Verdict is shorthand for b.Signal.Verdict.
func (b *Bundle) Verdict() Verdict {
	return b.Signal.Verdict
}
