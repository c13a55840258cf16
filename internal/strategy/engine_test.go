package strategy

import (
	"reflect"
	"testing"

	"StockSentinel/internal/model"
)

func rsi(v float64) *float64 { return &v }

func factor(sig *model.Signal, name string) model.FactorScore {
	for _, f := range sig.Factors {
		if f.Name == name {
			return f
		}
	}
	return model.FactorScore{}
}

func TestEvaluate_EmptyInput(t *testing.T) {
	sig := Evaluate(Input{})
	if sig == nil {
		t.Fatal("expected non-nil signal")
	}
	if len(sig.Factors) != 6 {
		t.Fatalf("expected 6 factors, got %d", len(sig.Factors))
	}
	if sig.TotalScore != 0 {
		t.Errorf("expected zero score, got %.2f", sig.TotalScore)
	}
	if sig.Verdict != model.VerdictHold {
		t.Errorf("expected HOLD, got %s", sig.Verdict)
	}
}

func TestEvaluate_OversoldRSI(t *testing.T) {
	sig := Evaluate(Input{RSI: rsi(25)})
	if sig.TotalScore != 25 {
		t.Errorf("expected score 25, got %.2f", sig.TotalScore)
	}
	if sig.Verdict != model.VerdictBuy {
		t.Errorf("expected BUY, got %s", sig.Verdict)
	}
}

func TestEvaluate_OverboughtRSI(t *testing.T) {
	sig := Evaluate(Input{RSI: rsi(85)})
	if sig.TotalScore != -30 {
		t.Errorf("expected score -30, got %.2f", sig.TotalScore)
	}
	if sig.Verdict != model.VerdictReduce {
		t.Errorf("expected REDUCE, got %s", sig.Verdict)
	}
}

func TestMapVerdict_Boundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  model.Verdict
	}{
		{100, model.VerdictStrongBuy},
		{45, model.VerdictStrongBuy},
		{44.9, model.VerdictBuy},
		{25, model.VerdictBuy},
		{24.9, model.VerdictAccumulate},
		{10, model.VerdictAccumulate},
		{9.9, model.VerdictHold},
		{-10, model.VerdictHold},
		{-10.1, model.VerdictReduce},
		{-30, model.VerdictReduce},
		{-30.1, model.VerdictSell},
		{-200, model.VerdictSell},
	}
	for _, c := range cases {
		if got := mapVerdict(c.score); got != c.want {
			t.Errorf("mapVerdict(%.1f) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestScoreQuality(t *testing.T) {
	cases := []struct {
		name string
		f    model.Fundamentals
		want float64
	}{
		{"no financial data", model.Fundamentals{}, 0},
		{
			"strong and cheap",
			model.Fundamentals{
				FinancialData: &model.FinancialData{ProfitMargins: 0.35, ReturnOnEquity: 0.30, RevenueGrowth: 0.20},
				SummaryDetail: &model.SummaryDetail{TrailingPE: 12},
			},
			35,
		},
		{
			"weak and shrinking",
			model.Fundamentals{
				FinancialData: &model.FinancialData{ProfitMargins: 0.01, ReturnOnEquity: 0.01, RevenueGrowth: -0.1},
			},
			-25,
		},
		{
			"forward P/E fallback",
			model.Fundamentals{
				FinancialData: &model.FinancialData{ProfitMargins: 0.20, ReturnOnEquity: 0.20, RevenueGrowth: 0.05},
				KeyStatistics: &model.KeyStatistics{ForwardPE: 70},
			},
			-1,
		},
		{
			"trailing wins over forward",
			model.Fundamentals{
				FinancialData: &model.FinancialData{ProfitMargins: 0.20, ReturnOnEquity: 0.20, RevenueGrowth: 0.05},
				SummaryDetail: &model.SummaryDetail{TrailingPE: 45},
				KeyStatistics: &model.KeyStatistics{ForwardPE: 10},
			},
			9,
		},
	}
	for _, c := range cases {
		if got := scoreQuality(&c.f).Score; got != c.want {
			t.Errorf("%s: got %.2f, want %.2f", c.name, got, c.want)
		}
	}
}

func TestScoreAnalyst_Sources(t *testing.T) {
	trend := &model.RecommendationTrend{Trend: []model.TrendPeriod{
		{Period: "0m", StrongBuy: 10, Buy: 10},
		{Period: "-1m", Sell: 50},
	}}
	cases := []struct {
		name string
		f    model.Fundamentals
		want float64
	}{
		{"none", model.Fundamentals{}, 0},
		{"latest trend period", model.Fundamentals{RecommendationTrend: trend}, 16},
		{
			"trend preferred over key",
			model.Fundamentals{RecommendationTrend: trend, FinancialData: &model.FinancialData{RecommendationKey: "sell"}},
			16,
		},
		{
			"empty trend falls back to key",
			model.Fundamentals{
				RecommendationTrend: &model.RecommendationTrend{Trend: []model.TrendPeriod{{Period: "0m"}}},
				FinancialData:       &model.FinancialData{RecommendationKey: "buy"},
			},
			15,
		},
		{
			"strong sell counts are not weighted",
			model.Fundamentals{
				RecommendationTrend: &model.RecommendationTrend{Trend: []model.TrendPeriod{{Hold: 4, StrongSell: 100}}},
			},
			0,
		},
		{
			// (2*1.5 - 1.5 - 2.5) / 4 * 8
			"underperform and sell weights",
			model.Fundamentals{
				RecommendationTrend: &model.RecommendationTrend{Trend: []model.TrendPeriod{{Buy: 2, Underperform: 1, Sell: 1}}},
			},
			-2,
		},
		{
			"strong sell left out of the total",
			model.Fundamentals{
				RecommendationTrend: &model.RecommendationTrend{Trend: []model.TrendPeriod{{Buy: 2, StrongSell: 2}}},
			},
			12,
		},
		{"unknown key", model.Fundamentals{FinancialData: &model.FinancialData{RecommendationKey: "moon"}}, 0},
		{"strong sell key", model.Fundamentals{FinancialData: &model.FinancialData{RecommendationKey: "strong_sell"}}, -30},
	}
	for _, c := range cases {
		if got := scoreAnalyst(&c.f).Score; got != c.want {
			t.Errorf("%s: got %.2f, want %.2f", c.name, got, c.want)
		}
	}
}

func TestScoreTechnical(t *testing.T) {
	cases := []struct {
		name string
		rsi  *float64
		q    model.Quote
		want float64
	}{
		{"rsi 29", rsi(29), model.Quote{}, 25},
		{"rsi 30", rsi(30), model.Quote{}, 8},
		{"rsi 50", rsi(50), model.Quote{}, 0},
		{"rsi 65", rsi(65), model.Quote{}, -10},
		{"rsi 75", rsi(75), model.Quote{}, -20},
		{"rsi 81", rsi(81), model.Quote{}, -30},
		{"ma above", nil, model.Quote{Price: 110, FiftyDayAverage: 100}, 10},
		{"ma below", nil, model.Quote{Price: 90, FiftyDayAverage: 100}, -15},
		{"ma flat", nil, model.Quote{Price: 102, FiftyDayAverage: 100}, 0},
		{"no indicator", nil, model.Quote{Price: 102}, 0},
	}
	for _, c := range cases {
		if got := scoreTechnical(c.rsi, &c.q).Score; got != c.want {
			t.Errorf("%s: got %.2f, want %.2f", c.name, got, c.want)
		}
	}
}

func TestScoreMomentum(t *testing.T) {
	cases := map[float64]float64{-3: -15, -1.5: -5, 0: 0, 2: 0, 2.5: 5}
	for change, want := range cases {
		if got := scoreMomentum(&model.Quote{ChangePercent: change}).Score; got != want {
			t.Errorf("change %.1f: got %.2f, want %.2f", change, got, want)
		}
	}
}

func TestScoreCycle(t *testing.T) {
	near := model.Quote{Price: 99, FiftyTwoWeekHigh: 100}
	cases := []struct {
		name string
		q    model.Quote
		f    model.Fundamentals
		want float64
	}{
		{"near high", near, model.Fundamentals{}, -15},
		{"near high and expensive", near, model.Fundamentals{SummaryDetail: &model.SummaryDetail{TrailingPE: 40}}, -25},
		{"forward P/E ignored", near, model.Fundamentals{KeyStatistics: &model.KeyStatistics{ForwardPE: 40}}, -15},
		{"approaching high", model.Quote{Price: 96, FiftyTwoWeekHigh: 100}, model.Fundamentals{}, -5},
		{"far from high", model.Quote{Price: 80, FiftyTwoWeekHigh: 100}, model.Fundamentals{}, 0},
		{"no high", model.Quote{Price: 80}, model.Fundamentals{}, 0},
	}
	for _, c := range cases {
		if got := scoreCycle(&c.q, &c.f).Score; got != c.want {
			t.Errorf("%s: got %.2f, want %.2f", c.name, got, c.want)
		}
	}
}

func TestScoreNews_PositiveOverwritesNegative(t *testing.T) {
	items := []model.NewsItem{
		{Sentiment: model.SentimentNegative},
		{Sentiment: model.SentimentNegative},
		{Sentiment: model.SentimentPositive},
		{Sentiment: model.SentimentPositive},
	}
	if got := scoreNews(items).Score; got != 15 {
		t.Errorf("expected positive precedence (15), got %.2f", got)
	}

	cases := []struct {
		name  string
		items []model.NewsItem
		want  float64
	}{
		{"none", nil, 0},
		{"one negative", []model.NewsItem{{Sentiment: model.SentimentNegative}}, -10},
		{"two negative", []model.NewsItem{{Sentiment: model.SentimentNegative}, {Sentiment: model.SentimentNegative}}, -25},
		{"one positive one negative", []model.NewsItem{{Sentiment: model.SentimentPositive}, {Sentiment: model.SentimentNegative}}, 5},
		{"neutral only", []model.NewsItem{{Sentiment: model.SentimentNeutral}}, 0},
	}
	for _, c := range cases {
		if got := scoreNews(c.items).Score; got != c.want {
			t.Errorf("%s: got %.2f, want %.2f", c.name, got, c.want)
		}
	}
}

func TestEvaluate_FullInput(t *testing.T) {
	in := Input{
		Fundamentals: model.Fundamentals{
			FinancialData: &model.FinancialData{ProfitMargins: 0.35, ReturnOnEquity: 0.30, RevenueGrowth: 0.20, RecommendationKey: "buy"},
			SummaryDetail: &model.SummaryDetail{TrailingPE: 12},
		},
		Quote: model.Quote{Price: 80, FiftyTwoWeekHigh: 100, ChangePercent: 3},
		News:  []model.NewsItem{{Sentiment: model.SentimentPositive}},
		RSI:   rsi(40),
	}
	sig := Evaluate(in)

	// quality 35, analyst 15, technical 8, momentum 5, cycle 0, news 5
	if sig.TotalScore != 68 {
		t.Errorf("expected score 68, got %.2f", sig.TotalScore)
	}
	if sig.Verdict != model.VerdictStrongBuy {
		t.Errorf("expected STRONG BUY, got %s", sig.Verdict)
	}
	if f := factor(sig, FactorAnalyst); f.Commentary != "recommendation key" {
		t.Errorf("expected analyst source to be the key, got %q", f.Commentary)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	in := Input{
		Fundamentals: model.Fundamentals{FinancialData: &model.FinancialData{ProfitMargins: 0.2}},
		Quote:        model.Quote{Price: 99, FiftyTwoWeekHigh: 100, ChangePercent: -1.5},
		News:         []model.NewsItem{{Sentiment: model.SentimentNegative}},
		RSI:          rsi(72),
	}
	a, b := Evaluate(in), Evaluate(in)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected identical signals, got %+v and %+v", a, b)
	}
}
