package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"docqa/internal/app"
	"docqa/internal/model"
)

// RAGClient is the gateway's HTTP client for the RAG service. Every call has
// one bounded wait; a timeout or connection failure surfaces as
// app.ErrUpstreamUnavailable so the gateway can answer 503 instead of a
// generic server error.
type RAGClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRAGClient(baseURL string, timeout time.Duration) *RAGClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RAGClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type queryRequest struct {
	UserID   string `json:"user_id"`
	Question string `json:"question"`
}

type classifyRequest struct {
	Sentence string `json:"sentence"`
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Query asks the RAG service to answer a question from the user's documents.
func (c *RAGClient) Query(ctx context.Context, userID, question string) (*app.AskResult, error) {
	data, err := c.post(ctx, "/rag/query", queryRequest{UserID: userID, Question: question})
	if err != nil {
		return nil, err
	}
	var result app.AskResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode rag query response failed: %w", err)
	}
	return &result, nil
}

// Classify asks the RAG service for the sentiment of a sentence.
func (c *RAGClient) Classify(ctx context.Context, sentence string) (model.Sentiment, error) {
	data, err := c.post(ctx, "/text/classify", classifyRequest{Sentence: sentence})
	if err != nil {
		return "", err
	}
	var result struct {
		Sentiment model.Sentiment `json:"sentiment"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode classify response failed: %w", err)
	}
	return result.Sentiment, nil
}

func (c *RAGClient) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal rag request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build rag request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: rag service: %v", app.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read rag response: %v", app.ErrUpstreamUnavailable, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: malformed rag response (status %d)", app.ErrUpstreamUnavailable, resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return env.Data, nil
	case http.StatusNotFound:
		return nil, app.ErrNoDocuments
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", app.ErrInvalidInput, env.Message)
	default:
		return nil, fmt.Errorf("%w: rag service status %d: %s", app.ErrUpstreamUnavailable, resp.StatusCode, env.Message)
	}
}
