package domain

// Page is one page of extracted document text. Numbers are 1-based and
// follow the document's page order.
type Page struct {
	Number int
	Text   string
}

// Chunk is a bounded, page-scoped segment of document text with provenance.
// IDs form a dense 0-based sequence in emission order across the whole
// document and double as the row identifier in the vector index. Chunks are
// immutable once created; a new document rebuilds everything from scratch.
type Chunk struct {
	ID      int    `json:"chunk_id"`
	Page    int    `json:"page"`
	Section string `json:"section"`
	Text    string `json:"text"`
}

// RetrievalResult pairs a chunk with its cosine similarity against one
// query. Scores live in [-1, 1], practically [0, 1] for text embeddings.
type RetrievalResult struct {
	ChunkID int     `json:"chunk_id"`
	Page    int     `json:"page"`
	Section string  `json:"section"`
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
}

// Answer is a generated response plus the retrieval evidence it was
// grounded in.
type Answer struct {
	Text      string            `json:"answer"`
	Retrieved []RetrievalResult `json:"retrieved"`
}
