// Package cache holds the per-symbol bundle store. Every reader of a symbol
// inside the freshness window gets the same *model.Bundle.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"StockSentinel/internal/common"
	"StockSentinel/internal/model"
)

// DefaultTTL is how long a bundle stays fresh.
const DefaultTTL = 10 * time.Second

// ErrNotFound wraps every failed fetch round.
var ErrNotFound = errors.New("no data for symbol")

// FetchFunc produces a fresh bundle for symbol.
type FetchFunc func(ctx context.Context, symbol string) (*model.Bundle, error)

// Entry is a stored bundle and the time its fetch round completed.
type Entry struct {
	Bundle   *model.Bundle
	StoredAt time.Time
}

// Stats are cumulative counters since the cache was created.
type Stats struct {
	Hits     int64
	Misses   int64
	Flights  int64
	Failures int64
}

// Cache is a TTL-bounded, single-flight store of bundles keyed by symbol.
// Entries are overwritten, never evicted.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	group   singleflight.Group

	ttl    time.Duration
	now    func() time.Time
	logger *common.Logger

	hits, misses, flights, failures atomic.Int64
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the freshness window. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithLogger(logger *common.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// New creates an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]Entry),
		ttl:     DefaultTTL,
		now:     time.Now,
		logger:  common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the freshness window.
func (c *Cache) TTL() time.Duration { return c.ttl }

func (c *Cache) fresh(symbol string) (*model.Bundle, bool) {
	c.mu.RLock()
	e, ok := c.entries[symbol]
	c.mu.RUnlock()
	if !ok || c.now().Sub(e.StoredAt) >= c.ttl {
		return nil, false
	}
	return e.Bundle, true
}

// GetOrFetch returns the fresh bundle for symbol, running fetch when there
// is none. Concurrent misses share one fetch and one result. The fetch is
// detached from ctx cancellation so callers that give up do not fail the
// others; a cancelled caller still returns ctx.Err() immediately.
func (c *Cache) GetOrFetch(ctx context.Context, symbol string, fetch FetchFunc) (*model.Bundle, error) {
	if b, ok := c.fresh(symbol); ok {
		c.hits.Add(1)
		return b, nil
	}
	c.misses.Add(1)

	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(symbol, func() (any, error) {
		// A flight that finished just before we joined has already stored.
		if b, ok := c.fresh(symbol); ok {
			return b, nil
		}
		c.flights.Add(1)

		b, err := fetch(flightCtx, symbol)
		if err == nil && b == nil {
			err = errors.New("fetch returned no bundle")
		}
		if err != nil {
			c.failures.Add(1)
			return nil, err
		}

		c.mu.Lock()
		c.entries[symbol] = Entry{Bundle: b, StoredAt: c.now()}
		c.mu.Unlock()
		return b, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			c.logger.Warn().Err(res.Err).Str("symbol", symbol).Msg("fetch round failed")
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, symbol, res.Err)
		}
		return res.Val.(*model.Bundle), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Peek returns the fresh bundle for symbol without fetching.
func (c *Cache) Peek(symbol string) (*model.Bundle, bool) {
	return c.fresh(symbol)
}

// Len returns the number of stored entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) Stats() Stats {
	return Stats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Flights:  c.flights.Load(),
		Failures: c.failures.Load(),
	}
}
