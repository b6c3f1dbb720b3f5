package ai

import "context"

// Client binds the OpenAI-compatible HTTP client to the configured chat and
// embedding models, so callers don't carry configs around.
type Client struct {
	http *OpenAICompatibleClient
	chat ChatConfig
	emb  EmbeddingConfig
}

func NewClient(chat ChatConfig, emb EmbeddingConfig) *Client {
	return &Client{
		http: NewOpenAICompatibleClient(),
		chat: chat,
		emb:  emb,
	}
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	return c.http.Embed(ctx, c.emb, text)
}

func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return c.http.EmbedBatch(ctx, c.emb, texts)
}

func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	messages := []ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
	return c.http.Complete(ctx, c.chat, messages)
}

func (c *Client) CompleteWithTool(ctx context.Context, system, user string, tool Tool) (*ToolCall, error) {
	messages := []ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
	return c.http.CompleteWithTool(ctx, c.chat, messages, tool)
}
