package usecase

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"docrag/internal/adapter/index"
	"docrag/internal/adapter/segmenter"
	"docrag/internal/domain"
	"docrag/internal/port"
)

// Session is the immutable (chunks, index) pair produced by one successful
// ingestion. Row i of the index corresponds to Chunks[i]. A new document
// builds a fresh Session that fully replaces any prior one; there is no
// merging and no persistence beyond the process.
type Session struct {
	Chunks []domain.Chunk
	Index  *index.Flat
}

// PageCount returns the number of distinct pages that produced chunks.
func (s *Session) PageCount() int {
	seen := make(map[int]struct{})
	for _, c := range s.Chunks {
		seen[c.Page] = struct{}{}
	}
	return len(seen)
}

// Ingest builds a Session from raw document bytes: extract pages, segment
// into overlapping windows, embed every chunk, build the index.
type Ingest struct {
	extractor port.Extractor
	segmenter *segmenter.Segmenter
	embedder  port.Embedder
	batchSize int
	log       logrus.FieldLogger
}

// NewIngest wires the ingestion pipeline. The embedder must be the same
// instance later used for queries.
func NewIngest(extractor port.Extractor, seg *segmenter.Segmenter, embedder port.Embedder, batchSize int, log logrus.FieldLogger) *Ingest {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Ingest{
		extractor: extractor,
		segmenter: seg,
		embedder:  embedder,
		batchSize: batchSize,
		log:       log,
	}
}

// Run executes the full ingestion as one blocking batch. onProgress, when
// non-nil, is called after each embedded batch with (done, total) chunk
// counts. Any failure aborts the whole ingestion; no partial Session is
// ever returned, so the caller's previous Session stays usable.
func (u *Ingest) Run(data []byte, onProgress func(done, total int)) (*Session, error) {
	pages, err := u.extractor.Extract(data)
	if err != nil {
		var extractionErr *domain.ExtractionError
		if !errors.As(err, &extractionErr) {
			err = &domain.ExtractionError{Err: err}
		}
		return nil, err
	}

	chunks := u.segmenter.Segment(pages)
	u.log.WithFields(logrus.Fields{
		"pages":  len(pages),
		"chunks": len(chunks),
	}).Info("document segmented")

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(texts); start += u.batchSize {
		end := start + u.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := u.embedder.Embed(texts[start:end])
		if err != nil {
			return nil, &domain.EmbeddingError{Err: fmt.Errorf("embed chunks %d-%d: %w", start, end-1, err)}
		}
		vectors = append(vectors, batch...)
		if onProgress != nil {
			onProgress(len(vectors), len(texts))
		}
	}

	idx, err := index.Build(vectors)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	u.log.WithFields(logrus.Fields{
		"rows":      idx.Len(),
		"dimension": idx.Dimension(),
		"model":     u.embedder.ModelName(),
	}).Info("index built")

	return &Session{Chunks: chunks, Index: idx}, nil
}
