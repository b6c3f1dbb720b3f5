package app

import (
	"context"
	"fmt"

	"docqa/internal/ai"
)

// fakeEmbedder returns canned vectors by exact text match and falls back to a
// fixed vector for unknown texts. It counts batch calls so tests can assert a
// document is embedded in a single request.
type fakeEmbedder struct {
	vectors    map[string][]float32
	fallback   []float32
	embedCalls int
	batchCalls int
	embedErr   error
	batchErr   error
}

func newFakeEmbedder(dimension int) *fakeEmbedder {
	fallback := make([]float32, dimension)
	fallback[dimension-1] = 1
	return &fakeEmbedder{
		vectors:  make(map[string][]float32),
		fallback: fallback,
	}
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.embedCalls++
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return f.fallback, nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.batchCalls++
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := f.Embed(context.Background(), text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// fakeChatModel records the prompts it receives and replies with canned
// content.
type fakeChatModel struct {
	answer      string
	completeErr error

	toolCall    *ai.ToolCall
	toolCallErr error

	lastSystem string
	lastUser   string
}

func (f *fakeChatModel) Complete(_ context.Context, system, user string) (string, error) {
	f.lastSystem = system
	f.lastUser = user
	if f.completeErr != nil {
		return "", f.completeErr
	}
	return f.answer, nil
}

func (f *fakeChatModel) CompleteWithTool(_ context.Context, system, user string, _ ai.Tool) (*ai.ToolCall, error) {
	f.lastSystem = system
	f.lastUser = user
	if f.toolCallErr != nil {
		return nil, f.toolCallErr
	}
	if f.toolCall == nil {
		return nil, fmt.Errorf("no canned tool call configured")
	}
	return f.toolCall, nil
}
