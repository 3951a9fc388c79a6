package llm

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// Client generates text through an OpenAI-compatible chat-completion
// endpoint. The default configuration points it at Groq, which speaks the
// same wire protocol.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// Config selects the endpoint, model and sampling parameters.
type Config struct {
	APIKeyEnv   string
	Model       string
	BaseURL     string
	Temperature float32
	MaxTokens   int
}

// NewClient reads the API key from the environment variable named in the
// config.
func NewClient(cfg Config) (*Client, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", cfg.APIKeyEnv)
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:         openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// GenerateWithSystem sends one system + user exchange and returns the text
// of the first choice. Failures are returned as-is; the caller decides
// whether and how to retry.
func (c *Client) GenerateWithSystem(systemPrompt, userPrompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ModelName returns the name of the model.
func (c *Client) ModelName() string { return c.model }
