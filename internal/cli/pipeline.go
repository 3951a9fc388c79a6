package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"docrag/config"
	"docrag/internal/adapter/embedding"
	"docrag/internal/adapter/extractor"
	"docrag/internal/adapter/llm"
	"docrag/internal/adapter/segmenter"
	"docrag/internal/port"
	"docrag/internal/usecase"
)

func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		return embedding.NewClient(embedding.Config{
			APIKeyEnv: cfg.Embedding.APIKeyEnv,
			Model:     cfg.Embedding.Model,
			BaseURL:   cfg.Embedding.BaseURL,
			Dimension: cfg.Embedding.Dimension,
			BatchSize: cfg.Embedding.BatchSize,
		})
	case "mock":
		return embedding.NewMock(cfg.Embedding.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Embedding.Provider)
	}
}

func newLLM(cfg *config.Config) (port.LLM, error) {
	return llm.NewClient(llm.Config{
		APIKeyEnv:   cfg.LLM.APIKeyEnv,
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
}

func newExtractor(path string) port.Extractor {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return extractor.NewPDF()
	}
	return extractor.NewPlain()
}

// ingestFile runs the full ingestion for one file with a terminal progress
// bar over the embedding phase.
func ingestFile(path string, cfg *config.Config, embedder port.Embedder, logger logrus.FieldLogger) (*usecase.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	seg, err := segmenter.New(cfg.Segment.ChunkChars(), cfg.Segment.OverlapChars())
	if err != nil {
		return nil, fmt.Errorf("invalid segment config: %w", err)
	}

	ingest := usecase.NewIngest(newExtractor(path), seg, embedder, cfg.Embedding.BatchSize, logger)

	var bar *progressbar.ProgressBar
	var barMu sync.Mutex
	onProgress := func(done, total int) {
		barMu.Lock()
		defer barMu.Unlock()
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	return ingest.Run(data, onProgress)
}
