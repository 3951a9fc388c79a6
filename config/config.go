package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the document QA tool.
type Config struct {
	Segment   SegmentConfig   `yaml:"segment"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SegmentConfig holds chunking configuration. Sizes are expressed in
// tokens and converted to characters with CharsPerToken, matching how
// embedding providers meter input.
type SegmentConfig struct {
	ChunkTokens   int `yaml:"chunk_tokens"`
	OverlapTokens int `yaml:"overlap_tokens"`
	CharsPerToken int `yaml:"chars_per_token"`
}

// ChunkChars returns the chunk window size in characters.
func (c SegmentConfig) ChunkChars() int {
	return c.ChunkTokens * c.CharsPerToken
}

// OverlapChars returns the window overlap in characters.
func (c SegmentConfig) OverlapChars() int {
	return c.OverlapTokens * c.CharsPerToken
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK      int `yaml:"top_k"`
	CacheSize int `yaml:"cache_size"`
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "openai" or "mock"
	Model     string `yaml:"model"`       // e.g., "text-embedding-3-small"
	APIKeyEnv string `yaml:"api_key_env"` // Environment variable for API key
	BaseURL   string `yaml:"base_url"`
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
}

// LLMConfig holds answer generation configuration.
type LLMConfig struct {
	Model       string  `yaml:"model"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	BaseURL     string  `yaml:"base_url"` // Any OpenAI-compatible endpoint
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Segment: SegmentConfig{
			ChunkTokens:   500,
			OverlapTokens: 50,
			CharsPerToken: 4,
		},
		Retrieve: RetrieveConfig{
			TopK:      5,
			CacheSize: 100,
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			BaseURL:   "https://api.openai.com/v1",
			Dimension: 1536,
			BatchSize: 100,
		},
		LLM: LLMConfig{
			Model:       "llama-3.3-70b-versatile",
			APIKeyEnv:   "GROQ_API_KEY",
			BaseURL:     "https://api.groq.com/openai/v1",
			Temperature: 0.2,
			MaxTokens:   1024,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for docrag.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "docrag.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".docrag", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
