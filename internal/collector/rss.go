package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmcdole/gofeed"

	"StockSentinel/internal/common"
	"StockSentinel/internal/model"
)

// DefaultFeedURL is Yahoo's per-symbol headline feed; %s is the escaped symbol.
const DefaultFeedURL = "https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US"

// RSSNewsFetcher wraps another Fetcher and serves News from an RSS feed.
// Every other lookup is delegated.
type RSSNewsFetcher struct {
	Fetcher
	feedURL string
	parser  *gofeed.Parser
	logger  *common.Logger
}

// RSSOption configures an RSSNewsFetcher.
type RSSOption func(*RSSNewsFetcher)

// WithFeedURL sets the feed URL template.
func WithFeedURL(feedURL string) RSSOption {
	return func(r *RSSNewsFetcher) {
		r.feedURL = feedURL
	}
}

// WithFeedClient sets the HTTP client used to download feeds.
func WithFeedClient(client *http.Client) RSSOption {
	return func(r *RSSNewsFetcher) {
		r.parser.Client = client
	}
}

// WithFeedLogger sets the logger.
func WithFeedLogger(logger *common.Logger) RSSOption {
	return func(r *RSSNewsFetcher) {
		r.logger = logger
	}
}

// NewRSSNewsFetcher decorates inner with RSS headlines.
func NewRSSNewsFetcher(inner Fetcher, opts ...RSSOption) *RSSNewsFetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	r := &RSSNewsFetcher{
		Fetcher: inner,
		feedURL: DefaultFeedURL,
		parser:  parser,
		logger:  common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RSSNewsFetcher) Name() string { return "rss+" + r.Fetcher.Name() }

// News parses the symbol's feed and returns up to count items.
func (r *RSSNewsFetcher) News(ctx context.Context, symbol string, count int) ([]model.RawNews, error) {
	feedURL := fmt.Sprintf(r.feedURL, url.QueryEscape(symbol))
	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		r.logger.Warn().Err(err).Str("symbol", symbol).Msg("rss feed failed")
		return nil, fmt.Errorf("parse rss %s: %w", symbol, err)
	}

	news := make([]model.RawNews, 0, len(feed.Items))
	for _, item := range feed.Items {
		if count > 0 && len(news) == count {
			break
		}
		publisher := feed.Title
		if len(item.Authors) > 0 && item.Authors[0].Name != "" {
			publisher = item.Authors[0].Name
		}
		news = append(news, model.RawNews{
			Title:     item.Title,
			Link:      item.Link,
			Publisher: publisher,
		})
	}
	return news, nil
}
