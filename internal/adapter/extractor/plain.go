package extractor

import (
	"fmt"
	"strings"

	"docrag/internal/domain"
)

// Plain treats the input as UTF-8 text. Form feeds split the document into
// pages; without any, the whole input is a single page.
type Plain struct{}

// NewPlain creates a plain-text extractor.
func NewPlain() *Plain {
	return &Plain{}
}

// Extract splits the text on form-feed characters into 1-based pages.
func (e *Plain) Extract(data []byte) ([]domain.Page, error) {
	if len(data) == 0 {
		return nil, &domain.ExtractionError{Err: fmt.Errorf("empty document")}
	}

	parts := strings.Split(string(data), "\f")
	pages := make([]domain.Page, len(parts))
	for i, part := range parts {
		pages[i] = domain.Page{Number: i + 1, Text: part}
	}
	return pages, nil
}
