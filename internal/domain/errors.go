package domain

import "fmt"

// ExtractionError reports unreadable or corrupt document bytes. It is fatal
// for the ingestion that produced it; no partial state survives.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract document: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// EmbeddingError reports a failed embedding call. The failure is propagated
// to the caller, never retried internally.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// DimensionMismatchError reports a query vector whose dimension differs from
// the index. It indicates a wiring bug, not a user condition.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("vector dimension mismatch: index has %d, query has %d", e.Want, e.Got)
}

// GenerationError reports a failed answer-generation call. Callers keep the
// retrieved evidence so a retry can reuse it without re-retrieving.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate answer: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
