package port

import "docrag/internal/domain"

// Extractor turns raw document bytes into ordered per-page plain text.
// Implementations fail with a domain.ExtractionError on corrupt or
// unreadable input.
type Extractor interface {
	Extract(data []byte) ([]domain.Page, error)
}
