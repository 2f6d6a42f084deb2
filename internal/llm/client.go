package llm

import (
	"context"
	"fmt"
	"math"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// #region types

// Message is one chat turn handed to the completion endpoint.
type Message struct {
	Role    string // "system" | "user" | "assistant"
	Content string
}

// Params tunes a single generation call.
type Params struct {
	Temperature float32
	MaxTokens   int
}

// Config holds connection settings for an OpenAI-compatible endpoint.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	EmbedModel string
}

// DefaultConfig reads OPENAI_BASE_URL, OPENAI_API_KEY, LLM_MODEL, and
// EMBED_MODEL. BaseURL empty means the public OpenAI endpoint; a local
// llama-server URL works the same way.
func DefaultConfig() Config {
	cfg := Config{
		Model:      "gpt-4o-mini",
		EmbedModel: "text-embedding-3-small",
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("EMBED_MODEL"); v != "" {
		cfg.EmbedModel = v
	}
	return cfg
}

// #endregion types

// #region client

// Client wraps the chat-completion and embedding endpoints behind the two
// capabilities the controller consumes.
type Client struct {
	api    *openai.Client
	config Config
}

// NewClient connects to the configured endpoint.
func NewClient(config Config) *Client {
	c := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		c.BaseURL = config.BaseURL
	}
	return &Client{api: openai.NewClientWithConfig(c), config: config}
}

// #endregion client

// #region generate

// Generate runs one chat completion with the given system prompt and turns.
func (c *Client) Generate(ctx context.Context, systemPrompt string, messages []Message, params Params) (string, error) {
	chat := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	chat = append(chat, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range messages {
		chat = append(chat, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    chat,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choice list")
	}
	return resp.Choices[0].Message.Content, nil
}

// #endregion generate

// #region embed

// Embed returns an L2-normalized embedding for text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("embed: empty text")
	}
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.config.EmbedModel),
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embeddings: no data returned")
	}

	vec := make([]float32, len(resp.Data[0].Embedding))
	copy(vec, resp.Data[0].Embedding)
	l2normalize(vec)
	return vec, nil
}

// l2normalize scales v to unit length in place.
func l2normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}

// #endregion embed
