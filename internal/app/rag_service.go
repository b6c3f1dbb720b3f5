package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docqa/internal/ai"
	"docqa/internal/model"
	"docqa/internal/vectorstore"
)

const defaultTopK = 5

// FallbackAnswer is the fixed sentence the model is instructed to return when
// the retrieved context does not contain the answer.
const FallbackAnswer = "I could not find information about this in the provided documents"

const ragSystemPrompt = "You are a helpful assistant that answers questions based on the provided context."

// Embedder converts text into fixed-dimension vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatModel produces completions, optionally through a forced tool call.
type ChatModel interface {
	Complete(ctx context.Context, system, user string) (string, error)
	CompleteWithTool(ctx context.Context, system, user string, tool ai.Tool) (*ai.ToolCall, error)
}

// RAGService answers questions from a user's ingested documents: retrieve
// nearest chunks, assemble a grounding prompt, ask the chat model.
type RAGService struct {
	store    vectorstore.Store
	embedder Embedder
	llm      ChatModel
	topK     int
}

func NewRAGService(store vectorstore.Store, embedder Embedder, llm ChatModel, topK int) *RAGService {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &RAGService{
		store:    store,
		embedder: embedder,
		llm:      llm,
		topK:     topK,
	}
}

// AskResult carries the synthesized answer and the chunks it was grounded on,
// in retrieval rank order.
type AskResult struct {
	Answer string   `json:"answer"`
	Chunks []string `json:"chunks"`
}

// Retrieve returns up to topK chunk texts from the user's collection, nearest
// first. A user with no collection gets ErrNoDocuments, never an empty result.
func (s *RAGService) Retrieve(ctx context.Context, userID, question string, topK int) ([]string, error) {
	if !model.ValidUserID(userID) {
		return nil, fmt.Errorf("%w: user id must be 1-64 letters, digits, '_' or '-'", ErrInvalidInput)
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", ErrInvalidInput)
	}
	if topK <= 0 {
		topK = s.topK
	}

	key := model.CollectionKeyForUser(userID)
	exists, err := s.store.HasCollection(ctx, key)
	if err != nil {
		return nil, upstreamError("vector store lookup", err)
	}
	if !exists {
		return nil, ErrNoDocuments
	}

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, upstreamError("embed question", err)
	}

	results, err := s.store.Query(ctx, key, queryVec, topK)
	if err != nil {
		if errors.Is(err, vectorstore.ErrCollectionNotFound) {
			return nil, ErrNoDocuments
		}
		return nil, upstreamError("vector store query", err)
	}

	chunks := make([]string, len(results))
	for i, r := range results {
		chunks[i] = r.Text
	}
	return chunks, nil
}

// Synthesize builds the grounding prompt from the chunks, in order, and
// returns the model's answer verbatim.
func (s *RAGService) Synthesize(ctx context.Context, question string, chunks []string) (string, error) {
	answer, err := s.llm.Complete(ctx, ragSystemPrompt, BuildPrompt(question, chunks))
	if err != nil {
		return "", upstreamError("chat completion", err)
	}
	return answer, nil
}

// Ask runs retrieval and synthesis for one question.
func (s *RAGService) Ask(ctx context.Context, userID, question string) (*AskResult, error) {
	chunks, err := s.Retrieve(ctx, userID, question, 0)
	if err != nil {
		return nil, err
	}

	answer, err := s.Synthesize(ctx, question, chunks)
	if err != nil {
		return nil, err
	}

	return &AskResult{
		Answer: answer,
		Chunks: chunks,
	}, nil
}

// BuildPrompt assembles the user-role prompt: context chunks joined by blank
// lines in retrieval order, the instruction to answer only from that context,
// and the fixed fallback sentence for questions the context cannot answer.
func BuildPrompt(question string, chunks []string) string {
	var sb strings.Builder
	sb.WriteString("Based on the context below, answer the user's question concisely.\n")
	sb.WriteString("If the answer is not in the context, say \"")
	sb.WriteString(FallbackAnswer)
	sb.WriteString("\".\n\nContext:\n---\n")
	sb.WriteString(strings.Join(chunks, "\n\n"))
	sb.WriteString("\n---\n\nQuestion: ")
	sb.WriteString(question)
	return sb.String()
}
