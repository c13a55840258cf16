package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockSentinel/internal/model"
)

// Fetcher defines the interface for fetching upstream market data.
type Fetcher interface {
	Quote(ctx context.Context, symbol string) (*model.Quote, error)
	Summary(ctx context.Context, symbol string, modules []string) (*model.Fundamentals, error)
	News(ctx context.Context, symbol string, count int) ([]model.RawNews, error)
	History(ctx context.Context, symbol string, from, to time.Time) (model.History, error)
	Search(ctx context.Context, query string, count int) ([]model.SearchResult, error)
	Name() string
}

// SummaryModules are the quote-summary modules the pipeline needs.
var SummaryModules = []string{
	"recommendationTrend",
	"financialData",
	"defaultKeyStatistics",
	"summaryDetail",
	"summaryProfile",
}

var (
	// ErrNoData is returned when the provider answers without a usable result.
	ErrNoData = errors.New("no data returned")
	// ErrHTTP is wrapped by every StatusError.
	ErrHTTP = errors.New("unexpected http status")
)

// StatusError carries the status of a non-200 upstream response.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", e.Endpoint, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrHTTP }
