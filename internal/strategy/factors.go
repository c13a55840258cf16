package strategy

import (
	"fmt"

	"StockSentinel/internal/model"
	"StockSentinel/internal/sentiment"
)

// Factor names as they appear in model.FactorScore.
const (
	FactorQuality   = "quality"
	FactorAnalyst   = "analyst"
	FactorTechnical = "technical"
	FactorMomentum  = "momentum"
	FactorCycle     = "cycle"
	FactorNews      = "news"
)

// scoreQuality scores margins, ROE, revenue growth and valuation.
// The four parts add up; the factor is zero without financial data.
func scoreQuality(f *model.Fundamentals) model.FactorScore {
	fin := f.FinancialData
	if fin == nil {
		return model.FactorScore{Name: FactorQuality, Commentary: "no financial data"}
	}

	var score float64

	switch margin := fin.ProfitMargins; {
	case margin > 0.30:
		score += 12
	case margin > 0.15:
		score += 7
	case margin < 0.05:
		score -= 10
	}

	switch roe := fin.ReturnOnEquity; {
	case roe > 0.25:
		score += 12
	case roe > 0.15:
		score += 7
	case roe < 0.05:
		score -= 5
	}

	switch growth := fin.RevenueGrowth; {
	case growth > 0.15:
		score += 6
	case growth < 0:
		score -= 10
	}

	pe, _, _ := firstPresent(f, peSources)
	switch {
	case pe > 60:
		score -= 15
	case pe > 40:
		score -= 5
	case pe > 0 && pe < 15:
		score += 5
	}

	return model.FactorScore{
		Name:  FactorQuality,
		Score: score,
		Commentary: fmt.Sprintf("margin=%.2f roe=%.2f growth=%.2f pe=%.1f",
			fin.ProfitMargins, fin.ReturnOnEquity, fin.RevenueGrowth, pe),
	}
}

// scoreAnalyst scores analyst consensus from the first available source.
func scoreAnalyst(f *model.Fundamentals) model.FactorScore {
	score, from, ok := firstPresent(f, analystSources)
	if !ok {
		return model.FactorScore{Name: FactorAnalyst, Commentary: "no analyst data"}
	}
	return model.FactorScore{Name: FactorAnalyst, Score: score, Commentary: from}
}

// scoreTechnical buckets the RSI, falling back to price vs the 50-day average.
func scoreTechnical(rsi *float64, q *model.Quote) model.FactorScore {
	if rsi != nil {
		var score float64
		switch r := *rsi; {
		case r < 30:
			score = 25
		case r < 45:
			score = 8
		case r > 80:
			score = -30
		case r > 70:
			score = -20
		case r > 60:
			score = -10
		}
		return model.FactorScore{Name: FactorTechnical, Score: score, Commentary: fmt.Sprintf("RSI=%.0f", *rsi)}
	}

	if q.FiftyDayAverage == 0 || q.Price == 0 {
		return model.FactorScore{Name: FactorTechnical, Commentary: "no indicator"}
	}
	diff := (q.Price - q.FiftyDayAverage) / q.FiftyDayAverage
	var score float64
	switch {
	case diff > 0.05:
		score = 10
	case diff < -0.05:
		score = -15
	}
	return model.FactorScore{Name: FactorTechnical, Score: score, Commentary: fmt.Sprintf("MA50 %+.1f%%", diff*100)}
}

// scoreMomentum adjusts for today's move.
func scoreMomentum(q *model.Quote) model.FactorScore {
	change := q.ChangePercent
	var score float64
	switch {
	case change < -2:
		score = -15
	case change < -1:
		score = -5
	case change > 2:
		score = 5
	}
	return model.FactorScore{Name: FactorMomentum, Score: score, Commentary: fmt.Sprintf("day %+.2f%%", change)}
}

// scoreCycle penalises buying near the 52-week high, more so when the
// trailing valuation is also stretched.
func scoreCycle(q *model.Quote, f *model.Fundamentals) model.FactorScore {
	if q.FiftyTwoWeekHigh == 0 || q.Price == 0 {
		return model.FactorScore{Name: FactorCycle, Commentary: "no 52w high"}
	}
	proximity := (q.FiftyTwoWeekHigh - q.Price) / q.FiftyTwoWeekHigh

	var score float64
	switch {
	case proximity < 0.02:
		score = -15
		if pe, _, _ := firstPresent(f, trailingPESources); pe > 35 {
			score -= 10
		}
	case proximity < 0.05:
		score = -5
	}
	return model.FactorScore{Name: FactorCycle, Score: score, Commentary: fmt.Sprintf("%.1f%% below 52w high", proximity*100)}
}

// scoreNews scores headline sentiment. The positive thresholds are checked
// after the negative ones and overwrite them when they trigger.
func scoreNews(items []model.NewsItem) model.FactorScore {
	if len(items) == 0 {
		return model.FactorScore{Name: FactorNews, Commentary: "no news"}
	}
	positive, negative := sentiment.Count(items)

	var score float64
	switch {
	case negative >= 2:
		score = -25
	case negative == 1:
		score = -10
	}
	switch {
	case positive >= 2:
		score = 15
	case positive == 1:
		score = 5
	}
	return model.FactorScore{Name: FactorNews, Score: score, Commentary: fmt.Sprintf("+%d/-%d", positive, negative)}
}
