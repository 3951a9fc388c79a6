package embedding

import (
	"context"
	"fmt"
	"math"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// Client embeds text through an OpenAI-compatible embeddings endpoint.
// Every returned vector is L2-normalized so that cosine similarity can be
// computed as a plain inner product downstream; the same client must serve
// both index build and query time to keep the embedding space consistent.
type Client struct {
	api       *openai.Client
	model     string
	dimension int
	batchSize int
}

// Config selects the endpoint and model for an embedding Client.
type Config struct {
	APIKeyEnv string
	Model     string
	BaseURL   string
	Dimension int
	BatchSize int
}

// NewClient reads the API key from the environment variable named in the
// config. The dimension defaults from the model name when unset.
func NewClient(cfg Config) (*Client, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", cfg.APIKeyEnv)
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	dimension := cfg.Dimension
	if dimension <= 0 {
		switch cfg.Model {
		case "text-embedding-3-large":
			dimension = 3072
		default:
			dimension = 1536
		}
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	return &Client{
		api:       openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		dimension: dimension,
		batchSize: batchSize,
	}, nil
}

// Embed generates one unit-length vector per input text, batching requests.
func (c *Client) Embed(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	all := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += c.batchSize {
		end := start + c.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := c.embedBatch(texts[start:end])
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}
	return all, nil
}

func (c *Client) embedBatch(texts []string) ([][]float32, error) {
	resp, err := c.api.CreateEmbeddings(context.Background(), openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.model),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response has %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, data := range resp.Data {
		if data.Index < 0 || data.Index >= len(vectors) {
			continue
		}
		v := make([]float32, len(data.Embedding))
		for i, x := range data.Embedding {
			v[i] = float32(x)
		}
		l2normalize(v)
		vectors[data.Index] = v
	}
	return vectors, nil
}

// Dimension returns the embedding vector dimension.
func (c *Client) Dimension() int { return c.dimension }

// ModelName returns the name of the embedding model.
func (c *Client) ModelName() string { return c.model }

// l2normalize scales v to unit length in place.
func l2normalize(v []float32) {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range v {
		v[i] *= inv
	}
}
