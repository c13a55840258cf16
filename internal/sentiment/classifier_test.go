package sentiment

import (
	"testing"

	"StockSentinel/internal/model"
)

func TestClassify_SortsAndTags(t *testing.T) {
	raw := []model.RawNews{
		{Title: "Zeta beats estimates", Link: "z", Publisher: "Reuters"},
		{Title: "Alpha faces risk", Link: "a", Publisher: "Bloomberg"},
	}
	got := Classify(raw)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0].Title != "Alpha faces risk" || got[0].Sentiment != model.SentimentNegative {
		t.Errorf("first item: got %q/%s", got[0].Title, got[0].Sentiment)
	}
	if got[1].Title != "Zeta beats estimates" || got[1].Sentiment != model.SentimentPositive {
		t.Errorf("second item: got %q/%s", got[1].Title, got[1].Sentiment)
	}
	if got[0].Link != "a" || got[0].Publisher != "Bloomberg" {
		t.Errorf("link/publisher not carried over: %+v", got[0])
	}
	// input must not be reordered
	if raw[0].Title != "Zeta beats estimates" {
		t.Error("Classify modified its input")
	}
}

func TestClassify_OrderIndependent(t *testing.T) {
	a := []model.RawNews{{Title: "b down"}, {Title: "a record"}, {Title: "c flat"}}
	b := []model.RawNews{{Title: "c flat"}, {Title: "b down"}, {Title: "a record"}}
	ga, gb := Classify(a), Classify(b)
	for i := range ga {
		if ga[i] != gb[i] {
			t.Errorf("index %d differs: %+v vs %+v", i, ga[i], gb[i])
		}
	}
}

func TestClassify_CaseSensitiveOrder(t *testing.T) {
	got := Classify([]model.RawNews{{Title: "apple"}, {Title: "Banana"}})
	// upper-case letters sort before lower-case ones
	if got[0].Title != "Banana" {
		t.Errorf("expected Banana first, got %q", got[0].Title)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		title string
		want  model.Sentiment
	}{
		{"Revenue GROWTH tops forecasts", model.SentimentPositive},
		{"Shares plunge after guidance cut", model.SentimentNegative},
		{"Company names new CFO", model.SentimentNeutral},
		{"Stock falls despite record quarter", model.SentimentPositive}, // positive wins
		{"Software update ships", model.SentimentPositive},              // substring "up"
		{"Analysts turn bearish", model.SentimentNegative},
		{"", model.SentimentNeutral},
	}
	for _, tt := range tests {
		if got := Score(tt.title); got != tt.want {
			t.Errorf("Score(%q) = %s, want %s", tt.title, got, tt.want)
		}
	}
}

func TestCount(t *testing.T) {
	items := []model.NewsItem{
		{Sentiment: model.SentimentPositive},
		{Sentiment: model.SentimentNegative},
		{Sentiment: model.SentimentPositive},
		{Sentiment: model.SentimentNeutral},
	}
	pos, neg := Count(items)
	if pos != 2 || neg != 1 {
		t.Errorf("expected 2/1, got %d/%d", pos, neg)
	}
}
