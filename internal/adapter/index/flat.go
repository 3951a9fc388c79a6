package index

import (
	"fmt"
	"sort"

	"github.com/viant/vec/search"

	"docrag/internal/domain"
)

// Match is one search hit: an index row and its cosine similarity.
type Match struct {
	Row   int
	Score float64
}

// Flat is a write-once, exact cosine-similarity index. Row i corresponds to
// chunk i of the document the vectors were built from. Stored vectors are
// L2-normalized at build time so inner product equals cosine similarity.
// Exactness matters at this corpus scale (hundreds to low thousands of rows
// per document); an approximate index would be a drop-in replacement behind
// the same contract if corpora ever grow past that.
type Flat struct {
	dim  int
	vecs [][]float32
}

// Build copies and unit-normalizes the vectors. All vectors must share one
// dimension, fixed for the lifetime of the index. An empty input builds an
// empty index.
func Build(vectors [][]float32) (*Flat, error) {
	if len(vectors) == 0 {
		return &Flat{}, nil
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("index: zero-dimensional vectors")
	}
	vecs := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("index: vector %d has dimension %d, want %d", i, len(v), dim)
		}
		vecs[i] = normalize(v)
	}
	return &Flat{dim: dim, vecs: vecs}, nil
}

// Len returns the number of indexed rows.
func (f *Flat) Len() int { return len(f.vecs) }

// Dimension returns the vector dimension fixed at build time.
func (f *Flat) Dimension() int { return f.dim }

// Search returns up to k rows sorted by descending similarity, ties broken
// by ascending row so results are deterministic. A k beyond the row count
// returns every row. A query of the wrong dimension fails with a
// domain.DimensionMismatchError.
func (f *Flat) Search(query []float32, k int) ([]Match, error) {
	if f.Len() == 0 {
		return nil, nil
	}
	if len(query) != f.dim {
		return nil, &domain.DimensionMismatchError{Want: f.dim, Got: len(query)}
	}
	if k <= 0 {
		return nil, nil
	}

	q := normalize(query)
	matches := make([]Match, len(f.vecs))
	for i, v := range f.vecs {
		// Both sides are unit vectors, so cosine distance is 1 - dot.
		d := search.Float32s(q).CosineDistanceWithMagnitudesNeon(v, 1, 1)
		matches[i] = Match{Row: i, Score: 1 - float64(d)}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Row < matches[j].Row
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}

// normalize returns a unit-length copy of v. Zero vectors are returned
// unscaled.
func normalize(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	m := search.Float32s(out).Magnitude()
	if m == 0 {
		return out
	}
	for i := range out {
		out[i] /= m
	}
	return out
}
