package strategy

import "StockSentinel/internal/model"

// source is one named place a value can come from. Sources are tried in
// order and the first one whose present func reports true is used.
type source struct {
	name    string
	present func(f *model.Fundamentals) bool
	value   func(f *model.Fundamentals) float64
}

// firstPresent returns the value and name of the first present source.
func firstPresent(f *model.Fundamentals, sources []source) (float64, string, bool) {
	for _, s := range sources {
		if s.present(f) {
			return s.value(f), s.name, true
		}
	}
	return 0, "", false
}

// peSources is the valuation lookup used by the quality factor.
var peSources = []source{
	{
		name:    "trailing P/E",
		present: func(f *model.Fundamentals) bool { return f.SummaryDetail != nil && f.SummaryDetail.TrailingPE != 0 },
		value:   func(f *model.Fundamentals) float64 { return f.SummaryDetail.TrailingPE },
	},
	{
		name:    "forward P/E",
		present: func(f *model.Fundamentals) bool { return f.KeyStatistics != nil && f.KeyStatistics.ForwardPE != 0 },
		value:   func(f *model.Fundamentals) float64 { return f.KeyStatistics.ForwardPE },
	},
}

// trailingPESources backs the cycle factor, which ignores forward P/E.
var trailingPESources = peSources[:1]

// analystSources prefers the detailed rating counts over the simple key.
var analystSources = []source{
	{
		name:    "recommendation trend",
		present: func(f *model.Fundamentals) bool { _, ok := latestTrend(f); return ok },
		value:   trendScore,
	},
	{
		name:    "recommendation key",
		present: func(f *model.Fundamentals) bool { return f.FinancialData != nil && f.FinancialData.RecommendationKey != "" },
		value:   func(f *model.Fundamentals) float64 { return recommendationKeyScores[f.FinancialData.RecommendationKey] },
	},
}

// Rating weights for the trend average.
const (
	weightStrongBuy    = 2.5
	weightBuy          = 1.5
	weightHold         = 0
	weightUnderperform = -1.5
	weightSell         = -2.5
	trendScale         = 8
)

// recommendationKeyScores maps the simple key to a fixed score. Unknown keys score 0.
var recommendationKeyScores = map[string]float64{
	"strong_buy":  25,
	"buy":         15,
	"overweight":  10,
	"hold":        0,
	"underweight": -10,
	"sell":        -20,
	"strong_sell": -30,
}

// latestTrend returns the most recent period and its respondent total,
// ok only when that total is positive.
func latestTrend(f *model.Fundamentals) (model.TrendPeriod, bool) {
	if f.RecommendationTrend == nil || len(f.RecommendationTrend.Trend) == 0 {
		return model.TrendPeriod{}, false
	}
	p := f.RecommendationTrend.Trend[0]
	return p, trendTotal(p) > 0
}

func trendTotal(p model.TrendPeriod) int {
	return p.StrongBuy + p.Buy + p.Hold + p.Underperform + p.Sell
}

func trendScore(f *model.Fundamentals) float64 {
	p, _ := latestTrend(f)
	weighted := float64(p.StrongBuy)*weightStrongBuy +
		float64(p.Buy)*weightBuy +
		float64(p.Hold)*weightHold +
		float64(p.Underperform)*weightUnderperform +
		float64(p.Sell)*weightSell
	return weighted / float64(trendTotal(p)) * trendScale
}
