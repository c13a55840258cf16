package model

// Fundamentals bundles the quote-summary modules. A nil module was not
// returned by the provider.
type Fundamentals struct {
	RecommendationTrend *RecommendationTrend
	FinancialData       *FinancialData
	KeyStatistics       *KeyStatistics
	SummaryDetail       *SummaryDetail
	Profile             *Profile
}

// RecommendationTrend lists analyst rating counts, most recent period first.
type RecommendationTrend struct {
	Trend []TrendPeriod
}

// TrendPeriod holds rating counts for one period (e.g. "0m", "-1m").
type TrendPeriod struct {
	Period       string
	StrongBuy    int
	Buy          int
	Hold         int
	Underperform int
	Sell         int
	StrongSell   int
}

// FinancialData carries profitability ratios and the simple recommendation key.
type FinancialData struct {
	ProfitMargins     float64
	ReturnOnEquity    float64
	RevenueGrowth     float64
	TotalRevenue      float64
	GrossProfits      float64
	RecommendationKey string
}

type KeyStatistics struct {
	ForwardPE float64
}

type SummaryDetail struct {
	TrailingPE float64
}

// Profile is the summaryProfile module.
type Profile struct {
	Sector              string
	Industry            string
	LongBusinessSummary string
}
