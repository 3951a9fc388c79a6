package embedding

// Mock derives deterministic unit vectors from the text's bytes. It has no
// semantic meaning but keeps the full pipeline runnable offline and in
// tests: identical texts map to identical vectors.
type Mock struct {
	dimension int
}

// NewMock creates a mock embedder with the given dimension.
func NewMock(dimension int) *Mock {
	return &Mock{dimension: dimension}
}

// Embed maps each text's leading runes onto vector components and
// normalizes the result.
func (e *Mock) Embed(texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		v := make([]float32, e.dimension)
		for j, r := range texts[i] {
			if j >= e.dimension {
				break
			}
			v[j] = float32(r) / 1000.0
		}
		l2normalize(v)
		vectors[i] = v
	}
	return vectors, nil
}

// Dimension returns the embedding vector dimension.
func (e *Mock) Dimension() int { return e.dimension }

// ModelName returns the name of the embedding model.
func (e *Mock) ModelName() string { return "mock" }
