package model

// Sentiment is the derived tone of a headline.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// RawNews is a news item as returned by the provider.
type RawNews struct {
	Title     string
	Link      string
	Publisher string
}

// NewsItem is a headline tagged with its sentiment.
type NewsItem struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Publisher string    `json:"publisher"`
	Sentiment Sentiment `json:"sentiment"`
}
