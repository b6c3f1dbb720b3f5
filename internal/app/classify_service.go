package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"docqa/internal/ai"
	"docqa/internal/model"
)

const classifySystemPrompt = "You are an expert in sentiment analysis. Use the 'set_sentiment' tool to classify the user's text."

// ClassifyService labels a sentence as Positive, Negative or Neutral by
// forcing the chat model through a single tool call whose only parameter is
// the enumerated label. The model's only valid output shape is the enum, so
// there is no free-text parsing.
type ClassifyService struct {
	llm ChatModel
}

func NewClassifyService(llm ChatModel) *ClassifyService {
	return &ClassifyService{llm: llm}
}

func sentimentTool() ai.Tool {
	return ai.Tool{
		Name:        "set_sentiment",
		Description: "Records the sentiment of a text as Positive, Negative or Neutral.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"sentiment": map[string]any{
					"type":        "string",
					"description": "The sentiment identified in the text.",
					"enum":        model.SentimentLabels(),
				},
			},
			"required": []string{"sentiment"},
		},
	}
}

// Classify returns the sentiment of a sentence.
func (s *ClassifyService) Classify(ctx context.Context, sentence string) (model.Sentiment, error) {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return "", fmt.Errorf("%w: sentence is empty", ErrInvalidInput)
	}

	call, err := s.llm.CompleteWithTool(ctx, classifySystemPrompt, sentence, sentimentTool())
	if err != nil {
		if errors.Is(err, ai.ErrNoToolCall) {
			return "", fmt.Errorf("%w: %v", ErrClassification, err)
		}
		return "", upstreamError("chat completion", err)
	}

	var args struct {
		Sentiment string `json:"sentiment"`
	}
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return "", fmt.Errorf("%w: unparseable tool arguments: %v", ErrClassification, err)
	}

	sentiment, err := model.ParseSentiment(args.Sentiment)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClassification, err)
	}
	return sentiment, nil
}
