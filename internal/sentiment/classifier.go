// Package sentiment tags headlines as positive, negative or neutral using
// fixed keyword lists.
package sentiment

import (
	"slices"
	"strings"

	"StockSentinel/internal/model"
)

// Positive and Negative are matched as lower-case substrings of the title.
var (
	Positive = []string{"growth", "beat", "record", "up", "jump", "surge", "optimistic"}
	Negative = []string{"miss", "down", "fall", "risk", "drop", "plunge", "bearish"}
)

// Classify returns the items sorted by title (byte order, stable) and tagged.
// raw is not modified.
func Classify(raw []model.RawNews) []model.NewsItem {
	sorted := slices.Clone(raw)
	slices.SortStableFunc(sorted, func(a, b model.RawNews) int {
		return strings.Compare(a.Title, b.Title)
	})

	items := make([]model.NewsItem, len(sorted))
	for i, n := range sorted {
		items[i] = model.NewsItem{
			Title:     n.Title,
			Link:      n.Link,
			Publisher: n.Publisher,
			Sentiment: Score(n.Title),
		}
	}
	return items
}

// Score classifies a single headline. Positive keywords win over negative ones.
func Score(title string) model.Sentiment {
	lower := strings.ToLower(title)
	switch {
	case containsAny(lower, Positive):
		return model.SentimentPositive
	case containsAny(lower, Negative):
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// Count returns how many items carry each sentiment.
func Count(items []model.NewsItem) (positive, negative int) {
	for _, n := range items {
		switch n.Sentiment {
		case model.SentimentPositive:
			positive++
		case model.SentimentNegative:
			negative++
		}
	}
	return positive, negative
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
