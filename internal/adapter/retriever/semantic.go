package retriever

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"docrag/internal/adapter/index"
	"docrag/internal/domain"
	"docrag/internal/port"
)

// Semantic ranks document chunks against a question by embedding the
// question into the same space the index was built from. It holds no
// per-document state: the (chunks, index) pair is passed in per call.
type Semantic struct {
	embedder port.Embedder
	log      logrus.FieldLogger
}

// NewSemantic creates a retriever around the embedder used at ingestion.
// Using any other embedder silently corrupts scores, so callers must wire
// the same instance for both.
func NewSemantic(embedder port.Embedder, log logrus.FieldLogger) *Semantic {
	return &Semantic{
		embedder: embedder,
		log:      log,
	}
}

// Retrieve returns up to k results in search order. An empty index yields
// an empty list, not an error. A search row outside the chunk range can
// only mean internal index corruption; it is skipped rather than surfaced,
// which may leave the result list shorter than k.
func (r *Semantic) Retrieve(question string, chunks []domain.Chunk, idx *index.Flat, k int) ([]domain.RetrievalResult, error) {
	if idx == nil || idx.Len() == 0 {
		return nil, nil
	}

	vectors, err := r.embedder.Embed([]string{question})
	if err != nil {
		return nil, &domain.EmbeddingError{Err: fmt.Errorf("embed question: %w", err)}
	}
	if len(vectors) == 0 {
		return nil, &domain.EmbeddingError{Err: fmt.Errorf("embedder returned no vector for the question")}
	}

	matches, err := idx.Search(vectors[0], k)
	if err != nil {
		return nil, err
	}

	results := make([]domain.RetrievalResult, 0, len(matches))
	for _, m := range matches {
		if m.Row < 0 || m.Row >= len(chunks) {
			r.log.WithField("row", m.Row).Warn("search returned a row outside the chunk range, skipping")
			continue
		}
		c := chunks[m.Row]
		results = append(results, domain.RetrievalResult{
			ChunkID: c.ID,
			Page:    c.Page,
			Section: c.Section,
			Text:    c.Text,
			Score:   m.Score,
		})
	}
	return results, nil
}
