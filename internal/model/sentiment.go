package model

import "fmt"

// Sentiment is the closed label set the classifier may return.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// ParseSentiment converts a raw label into a Sentiment, rejecting anything
// outside the allowed set.
func ParseSentiment(raw string) (Sentiment, error) {
	switch Sentiment(raw) {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return Sentiment(raw), nil
	default:
		return "", fmt.Errorf("unknown sentiment label %q", raw)
	}
}

// SentimentLabels returns the allowed label values, in declaration order.
func SentimentLabels() []string {
	return []string{
		string(SentimentPositive),
		string(SentimentNegative),
		string(SentimentNeutral),
	}
}
