package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"math"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"StockSentinel/internal/common"
	"StockSentinel/internal/model"
)

const (
	DefaultBaseURL   = "https://query2.finance.yahoo.com"
	DefaultCookieURL = "https://fc.yahoo.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// YahooFetcher implements Fetcher using the Yahoo Finance public API.
// Quote and summary lookups need a crumb, obtained once per session from
// the cookie endpoint and refreshed after an auth failure.
type YahooFetcher struct {
	baseURL    string
	cookieURL  string
	httpClient *http.Client
	transport  *http.Transport
	limiter    *rate.Limiter
	logger     *common.Logger

	mu    sync.Mutex
	crumb string
}

// YahooOption configures a YahooFetcher.
type YahooOption func(*YahooFetcher)

// WithBaseURL points every API call at baseURL.
func WithBaseURL(baseURL string) YahooOption {
	return func(f *YahooFetcher) {
		f.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithCookieURL sets the endpoint that hands out the session cookie.
func WithCookieURL(cookieURL string) YahooOption {
	return func(f *YahooFetcher) {
		f.cookieURL = cookieURL
	}
}

// WithLogger sets the logger.
func WithLogger(logger *common.Logger) YahooOption {
	return func(f *YahooFetcher) {
		f.logger = logger
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables the cap.
func WithRateLimit(requestsPerSecond int) YahooOption {
	return func(f *YahooFetcher) {
		if requestsPerSecond <= 0 {
			f.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		f.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) YahooOption {
	return func(f *YahooFetcher) {
		f.httpClient.Timeout = timeout
	}
}

// WithProxy routes requests through proxyURL. An unparsable URL is ignored.
func WithProxy(proxyURL string) YahooOption {
	return func(f *YahooFetcher) {
		if proxyURL == "" {
			return
		}
		if u, err := url.Parse(proxyURL); err == nil {
			f.transport.Proxy = http.ProxyURL(u)
		}
	}
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(opts ...YahooOption) *YahooFetcher {
	jar, _ := cookiejar.New(nil)
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	f := &YahooFetcher{
		baseURL:   DefaultBaseURL,
		cookieURL: DefaultCookieURL,
		transport: transport,
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: transport,
			Jar:       jar,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooError is the error object Yahoo embeds in its envelopes.
type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *yahooError) Error() string {
	return fmt.Sprintf("yahoo api error %s: %s", e.Code, e.Description)
}

// yahooNumber decodes a JSON number or numeric string. null, non-finite
// values and anything unparsable decode to 0 instead of failing the response.
type yahooNumber float64

func (n *yahooNumber) UnmarshalJSON(b []byte) error {
	*n = 0
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		var s string
		if json.Unmarshal(b, &s) != nil {
			return nil
		}
		if v, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return nil
		}
	}
	if !math.IsInf(v, 0) && !math.IsNaN(v) {
		*n = yahooNumber(v)
	}
	return nil
}

// yahooRaw is Yahoo's {"raw": 1.23, "fmt": "1.23"} number wrapper. A bare
// number is accepted too.
type yahooRaw struct {
	Raw yahooNumber `json:"raw"`
}

func (r *yahooRaw) UnmarshalJSON(b []byte) error {
	var wrapped struct {
		Raw yahooNumber `json:"raw"`
	}
	if err := json.Unmarshal(b, &wrapped); err == nil {
		r.Raw = wrapped.Raw
		return nil
	}
	return r.Raw.UnmarshalJSON(b)
}

func (r yahooRaw) value() float64 { return float64(r.Raw) }

type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []yahooQuote `json:"result"`
		Error  *yahooError  `json:"error"`
	} `json:"quoteResponse"`
}

type yahooQuote struct {
	Symbol                     string      `json:"symbol"`
	LongName                   string      `json:"longName"`
	ShortName                  string      `json:"shortName"`
	RegularMarketPrice         yahooNumber `json:"regularMarketPrice"`
	RegularMarketChangePercent yahooNumber `json:"regularMarketChangePercent"`
	Currency                   string      `json:"currency"`
	FiftyTwoWeekHigh           yahooNumber `json:"fiftyTwoWeekHigh"`
	FiftyDayAverage            yahooNumber `json:"fiftyDayAverage"`
}

type yahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []yahooQuoteSummaryResult `json:"result"`
		Error  *yahooError               `json:"error"`
	} `json:"quoteSummary"`
}

type yahooQuoteSummaryResult struct {
	RecommendationTrend  *yahooQuoteSummaryTrend     `json:"recommendationTrend"`
	FinancialData        *yahooQuoteSummaryFinancial `json:"financialData"`
	DefaultKeyStatistics *yahooQuoteSummaryKeyStats  `json:"defaultKeyStatistics"`
	SummaryDetail        *yahooQuoteSummaryDetail    `json:"summaryDetail"`
	SummaryProfile       *yahooQuoteSummaryProfile   `json:"summaryProfile"`
}

type yahooQuoteSummaryTrend struct {
	Trend []struct {
		Period       string      `json:"period"`
		StrongBuy    yahooNumber `json:"strongBuy"`
		Buy          yahooNumber `json:"buy"`
		Hold         yahooNumber `json:"hold"`
		Underperform yahooNumber `json:"underperform"`
		Sell         yahooNumber `json:"sell"`
		StrongSell   yahooNumber `json:"strongSell"`
	} `json:"trend"`
}

type yahooQuoteSummaryFinancial struct {
	ProfitMargins     yahooRaw `json:"profitMargins"`
	ReturnOnEquity    yahooRaw `json:"returnOnEquity"`
	RevenueGrowth     yahooRaw `json:"revenueGrowth"`
	TotalRevenue      yahooRaw `json:"totalRevenue"`
	GrossProfits      yahooRaw `json:"grossProfits"`
	RecommendationKey string   `json:"recommendationKey"`
}

type yahooQuoteSummaryKeyStats struct {
	ForwardPE yahooRaw `json:"forwardPE"`
}

type yahooQuoteSummaryDetail struct {
	TrailingPE yahooRaw `json:"trailingPE"`
}

type yahooQuoteSummaryProfile struct {
	Sector              string `json:"sector"`
	Industry            string `json:"industry"`
	LongBusinessSummary string `json:"longBusinessSummary"`
}

type yahooSearchResponse struct {
	Quotes []struct {
		Symbol         string `json:"symbol"`
		ShortName      string `json:"shortname"`
		LongName       string `json:"longname"`
		ExchDisp       string `json:"exchDisp"`
		IsYahooFinance bool   `json:"isYahooFinance"`
	} `json:"quotes"`
	News []struct {
		Title     string `json:"title"`
		Publisher string `json:"publisher"`
		Link      string `json:"link"`
	} `json:"news"`
}

// yahooChart is the response structure from the chart API. Closes are
// pointers because Yahoo sends null for days without a print.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

// Quote fetches the v7 quote for symbol.
func (f *YahooFetcher) Quote(ctx context.Context, symbol string) (*model.Quote, error) {
	var resp yahooQuoteResponse
	q := url.Values{"symbols": {symbol}}
	if err := f.getJSON(ctx, "/v7/finance/quote", q, true, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteResponse.Error != nil {
		return nil, resp.QuoteResponse.Error
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("quote %s: %w", symbol, ErrNoData)
	}

	r := resp.QuoteResponse.Result[0]
	return &model.Quote{
		Symbol:           r.Symbol,
		LongName:         plainText(r.LongName),
		ShortName:        plainText(r.ShortName),
		Price:            float64(r.RegularMarketPrice),
		ChangePercent:    float64(r.RegularMarketChangePercent),
		Currency:         r.Currency,
		FiftyTwoWeekHigh: float64(r.FiftyTwoWeekHigh),
		FiftyDayAverage:  float64(r.FiftyDayAverage),
	}, nil
}

// Summary fetches the requested v10 quoteSummary modules.
func (f *YahooFetcher) Summary(ctx context.Context, symbol string, modules []string) (*model.Fundamentals, error) {
	var resp yahooQuoteSummaryResponse
	q := url.Values{"modules": {strings.Join(modules, ",")}}
	if err := f.getJSON(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), q, true, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteSummary.Error != nil {
		return nil, resp.QuoteSummary.Error
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("summary %s: %w", symbol, ErrNoData)
	}
	return resp.QuoteSummary.Result[0].fundamentals(), nil
}

func (r *yahooQuoteSummaryResult) fundamentals() *model.Fundamentals {
	out := &model.Fundamentals{}
	if t := r.RecommendationTrend; t != nil {
		trend := &model.RecommendationTrend{Trend: make([]model.TrendPeriod, 0, len(t.Trend))}
		for _, p := range t.Trend {
			trend.Trend = append(trend.Trend, model.TrendPeriod{
				Period:       p.Period,
				StrongBuy:    int(p.StrongBuy),
				Buy:          int(p.Buy),
				Hold:         int(p.Hold),
				Underperform: int(p.Underperform),
				Sell:         int(p.Sell),
				StrongSell:   int(p.StrongSell),
			})
		}
		out.RecommendationTrend = trend
	}
	if fd := r.FinancialData; fd != nil {
		out.FinancialData = &model.FinancialData{
			ProfitMargins:     fd.ProfitMargins.value(),
			ReturnOnEquity:    fd.ReturnOnEquity.value(),
			RevenueGrowth:     fd.RevenueGrowth.value(),
			TotalRevenue:      fd.TotalRevenue.value(),
			GrossProfits:      fd.GrossProfits.value(),
			RecommendationKey: fd.RecommendationKey,
		}
	}
	if ks := r.DefaultKeyStatistics; ks != nil {
		out.KeyStatistics = &model.KeyStatistics{ForwardPE: ks.ForwardPE.value()}
	}
	if sd := r.SummaryDetail; sd != nil {
		out.SummaryDetail = &model.SummaryDetail{TrailingPE: sd.TrailingPE.value()}
	}
	if p := r.SummaryProfile; p != nil {
		out.Profile = &model.Profile{
			Sector:              p.Sector,
			Industry:            p.Industry,
			LongBusinessSummary: plainText(p.LongBusinessSummary),
		}
	}
	return out
}

// News returns up to count headlines from the v1 search endpoint.
func (f *YahooFetcher) News(ctx context.Context, symbol string, count int) ([]model.RawNews, error) {
	resp, err := f.search(ctx, symbol, 0, count)
	if err != nil {
		return nil, err
	}
	news := make([]model.RawNews, 0, len(resp.News))
	for _, n := range resp.News {
		news = append(news, model.RawNews{
			Title:     html.UnescapeString(n.Title),
			Link:      n.Link,
			Publisher: n.Publisher,
		})
	}
	return news, nil
}

// Search returns up to count symbol suggestions for query. Entries that
// Yahoo does not quote itself are dropped.
func (f *YahooFetcher) Search(ctx context.Context, query string, count int) ([]model.SearchResult, error) {
	resp, err := f.search(ctx, query, count, 0)
	if err != nil {
		return nil, err
	}
	results := make([]model.SearchResult, 0, len(resp.Quotes))
	for _, q := range resp.Quotes {
		if !q.IsYahooFinance {
			continue
		}
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		if name == "" {
			name = q.Symbol
		}
		results = append(results, model.SearchResult{
			Symbol:   q.Symbol,
			Name:     plainText(name),
			Exchange: q.ExchDisp,
		})
	}
	return results, nil
}

func (f *YahooFetcher) search(ctx context.Context, query string, quotesCount, newsCount int) (*yahooSearchResponse, error) {
	var resp yahooSearchResponse
	q := url.Values{
		"q":           {query},
		"quotesCount": {strconv.Itoa(quotesCount)},
		"newsCount":   {strconv.Itoa(newsCount)},
	}
	if err := f.getJSON(ctx, "/v1/finance/search", q, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History returns daily closes between from and to, oldest first.
// Days with a null close are skipped.
func (f *YahooFetcher) History(ctx context.Context, symbol string, from, to time.Time) (model.History, error) {
	var chart yahooChart
	q := url.Values{
		"period1":  {strconv.FormatInt(from.Unix(), 10)},
		"period2":  {strconv.FormatInt(to.Unix(), 10)},
		"interval": {"1d"},
	}
	if err := f.getJSON(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), q, false, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, chart.Chart.Error
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("history %s: %w", symbol, ErrNoData)
	}

	result := chart.Chart.Result[0]
	history := make(model.History, 0, len(result.Timestamp))
	if len(result.Indicators.Quote) == 0 {
		return history, nil
	}
	closes := result.Indicators.Quote[0].Close
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		history = append(history, model.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}

	sort.Slice(history, func(i, j int) bool { return history[i].Date.Before(history[j].Date) })
	return history, nil
}

// getJSON performs a rate-limited GET against the API and decodes the body into out.
func (f *YahooFetcher) getJSON(ctx context.Context, path string, query url.Values, withCrumb bool, out any) error {
	if withCrumb {
		crumb, err := f.sessionCrumb(ctx)
		if err != nil {
			return fmt.Errorf("yahoo crumb: %w", err)
		}
		query.Set("crumb", crumb)
	}

	body, status, err := f.get(ctx, f.baseURL+path+"?"+query.Encode())
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		f.resetCrumb()
	}
	if status != http.StatusOK {
		f.logger.Warn().Str("path", path).Int("status", status).Msg("yahoo non-OK response")
		return &StatusError{Endpoint: path, StatusCode: status}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode %s: %w", path, err)
	}
	return nil
}

func (f *YahooFetcher) get(ctx context.Context, endpoint string) ([]byte, int, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		f.logger.Error().Err(err).Str("url", endpoint).Dur("elapsed", elapsed).Msg("yahoo request failed")
		return nil, 0, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("yahoo read body: %w", err)
	}
	f.logger.Debug().Str("url", endpoint).Int("status", resp.StatusCode).Dur("elapsed", elapsed).Msg("yahoo request")
	return body, resp.StatusCode, nil
}

// sessionCrumb returns the cached crumb, performing the cookie handshake
// on first use. Concurrent callers wait for a single handshake.
func (f *YahooFetcher) sessionCrumb(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.crumb != "" {
		return f.crumb, nil
	}

	// The cookie endpoint answers 404 but still sets the session cookie.
	if _, _, err := f.get(ctx, f.cookieURL); err != nil {
		return "", fmt.Errorf("session cookie: %w", err)
	}

	body, status, err := f.get(ctx, f.baseURL+"/v1/test/getcrumb")
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &StatusError{Endpoint: "/v1/test/getcrumb", StatusCode: status}
	}
	crumb := strings.TrimSpace(string(body))
	if crumb == "" {
		return "", fmt.Errorf("empty crumb: %w", ErrNoData)
	}
	f.crumb = crumb
	f.logger.Debug().Msg("yahoo session established")
	return crumb, nil
}

func (f *YahooFetcher) resetCrumb() {
	f.mu.Lock()
	f.crumb = ""
	f.mu.Unlock()
}

// plainText strips markup and entities from provider text and collapses
// whitespace. Used for names and descriptions; headlines keep their text.
func plainText(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
