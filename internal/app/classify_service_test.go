package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/ai"
	"docqa/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		sentence string
		args     string
		want     model.Sentiment
	}{
		{"I loved this product, it works perfectly!", `{"sentiment":"Positive"}`, model.SentimentPositive},
		{"Terrible experience, it broke on the first day.", `{"sentiment":"Negative"}`, model.SentimentNegative},
		{"The package arrived on Tuesday.", `{"sentiment":"Neutral"}`, model.SentimentNeutral},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			llm := &fakeChatModel{toolCall: &ai.ToolCall{Name: "set_sentiment", Arguments: tt.args}}
			svc := NewClassifyService(llm)

			got, err := svc.Classify(context.Background(), tt.sentence)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.sentence, llm.lastUser)
		})
	}
}

func TestClassifyEmptySentence(t *testing.T) {
	svc := NewClassifyService(&fakeChatModel{})

	_, err := svc.Classify(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClassifyModelSkipsToolCall(t *testing.T) {
	llm := &fakeChatModel{toolCallErr: ai.ErrNoToolCall}
	svc := NewClassifyService(llm)

	_, err := svc.Classify(context.Background(), "some text")
	assert.ErrorIs(t, err, ErrClassification)
}

func TestClassifyUpstreamFailure(t *testing.T) {
	llm := &fakeChatModel{toolCallErr: errors.New("connection refused")}
	svc := NewClassifyService(llm)

	_, err := svc.Classify(context.Background(), "some text")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestClassifyMalformedToolArguments(t *testing.T) {
	tests := []struct {
		name string
		args string
	}{
		{"not json", "sentiment=Positive"},
		{"unknown label", `{"sentiment":"Ecstatic"}`},
		{"missing field", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &fakeChatModel{toolCall: &ai.ToolCall{Name: "set_sentiment", Arguments: tt.args}}
			svc := NewClassifyService(llm)

			_, err := svc.Classify(context.Background(), "some text")
			assert.ErrorIs(t, err, ErrClassification)
		})
	}
}
