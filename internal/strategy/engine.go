package strategy

import (
	"math"

	"StockSentinel/internal/model"
)

// Tiers maps a total score to a verdict, checked top-down.
var Tiers = []struct {
	MinScore float64
	Verdict  model.Verdict
}{
	{45, model.VerdictStrongBuy},
	{25, model.VerdictBuy},
	{10, model.VerdictAccumulate},
	{-10, model.VerdictHold},
	{-30, model.VerdictReduce},
}

// DefaultVerdict is the verdict for scores below the last tier.
const DefaultVerdict = model.VerdictSell

// Input is everything the engine scores. RSI is nil when no indicator is
// available, which switches the technical factor to its moving-average fallback.
type Input struct {
	Fundamentals model.Fundamentals
	Quote        model.Quote
	News         []model.NewsItem
	RSI          *float64
}

// mapVerdict maps a total score to a Verdict.
func mapVerdict(totalScore float64) model.Verdict {
	for _, t := range Tiers {
		if totalScore >= t.MinScore {
			return t.Verdict
		}
	}
	return DefaultVerdict
}

// Evaluate computes the composite signal. It never fails: missing data
// degrades the affected factor to its fallback or zero.
func Evaluate(in Input) *model.Signal {
	factors := []model.FactorScore{
		scoreQuality(&in.Fundamentals),
		scoreAnalyst(&in.Fundamentals),
		scoreTechnical(in.RSI, &in.Quote),
		scoreMomentum(&in.Quote),
		scoreCycle(&in.Quote, &in.Fundamentals),
		scoreNews(in.News),
	}

	var totalScore float64
	for _, f := range factors {
		totalScore += f.Score
	}
	if math.IsNaN(totalScore) {
		totalScore = 0
	}

	return &model.Signal{
		Factors:    factors,
		TotalScore: totalScore,
		Verdict:    mapVerdict(totalScore),
	}
}
