package retriever

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"docrag/internal/adapter/index"
	"docrag/internal/domain"
)

// stubEmbedder returns canned vectors per text and counts calls.
type stubEmbedder struct {
	vectors map[string][]float32
	calls   int
	fail    bool
}

func (s *stubEmbedder) Embed(texts []string) ([][]float32, error) {
	s.calls++
	if s.fail {
		return nil, fmt.Errorf("service unavailable")
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := s.vectors[t]
		if !ok {
			v = []float32{1, 0, 0}
		}
		out[i] = v
	}
	return out, nil
}

func (s *stubEmbedder) Dimension() int    { return 3 }
func (s *stubEmbedder) ModelName() string { return "stub" }

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testChunks(n int) []domain.Chunk {
	chunks := make([]domain.Chunk, n)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			ID:      i,
			Page:    i + 1,
			Section: "Body",
			Text:    fmt.Sprintf("chunk %d", i),
		}
	}
	return chunks
}

func TestRetrieveRanksClosestChunkFirst(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0.7, 0.7, 0},
		{0.1, 0.1, 0.9},
	}
	idx, err := index.Build(vectors)
	if err != nil {
		t.Fatal(err)
	}
	chunks := testChunks(5)

	emb := &stubEmbedder{vectors: map[string][]float32{
		"what about the third topic?": {0, 0.05, 1},
	}}
	r := NewSemantic(emb, testLogger())

	results, err := r.Retrieve("what about the third topic?", chunks, idx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ChunkID != 2 {
		t.Errorf("expected chunk 2 first, got %d", results[0].ChunkID)
	}

	all, err := r.Retrieve("what about the third topic?", chunks, idx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Fatalf("k beyond corpus must return all chunks, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Score > all[i-1].Score {
			t.Errorf("results not sorted by descending score at %d", i)
		}
	}
}

func TestRetrieveEmptyIndex(t *testing.T) {
	idx, err := index.Build(nil)
	if err != nil {
		t.Fatal(err)
	}

	emb := &stubEmbedder{}
	r := NewSemantic(emb, testLogger())

	results, err := r.Retrieve("anything", nil, idx, 5)
	if err != nil {
		t.Fatalf("empty index must not fail: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
	if emb.calls != 0 {
		t.Errorf("embedder called %d times on an empty index", emb.calls)
	}
}

func TestRetrieveSkipsRowsOutsideChunkRange(t *testing.T) {
	// Index carries more rows than there are chunks; the orphan rows must
	// be dropped silently.
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	idx, err := index.Build(vectors)
	if err != nil {
		t.Fatal(err)
	}
	chunks := testChunks(2)

	emb := &stubEmbedder{vectors: map[string][]float32{}}
	r := NewSemantic(emb, testLogger())

	results, err := r.Retrieve("q", chunks, idx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results after skipping the orphan row, got %d", len(results))
	}
	for _, res := range results {
		if res.ChunkID >= len(chunks) {
			t.Errorf("result references missing chunk %d", res.ChunkID)
		}
	}
}

func TestRetrieveEmbeddingFailure(t *testing.T) {
	idx, err := index.Build([][]float32{{1, 0, 0}})
	if err != nil {
		t.Fatal(err)
	}

	r := NewSemantic(&stubEmbedder{fail: true}, testLogger())

	_, err = r.Retrieve("q", testChunks(1), idx, 1)
	var embErr *domain.EmbeddingError
	if !errors.As(err, &embErr) {
		t.Fatalf("expected EmbeddingError, got %v", err)
	}
}

func TestRetrieveDimensionMismatch(t *testing.T) {
	idx, err := index.Build([][]float32{{1, 0, 0, 0}})
	if err != nil {
		t.Fatal(err)
	}

	// stubEmbedder emits 3-dimensional vectors against a 4-dimensional
	// index.
	r := NewSemantic(&stubEmbedder{vectors: map[string][]float32{}}, testLogger())

	_, err = r.Retrieve("q", testChunks(1), idx, 1)
	var mismatch *domain.DimensionMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected DimensionMismatchError, got %v", err)
	}
}
