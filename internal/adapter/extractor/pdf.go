package extractor

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"docrag/internal/domain"
)

// PDF extracts per-page plain text from a PDF byte stream.
type PDF struct{}

// NewPDF creates a PDF extractor.
func NewPDF() *PDF {
	return &PDF{}
}

// Extract returns one Page per document page, 1-based, in document order.
// Corrupt, truncated or empty input fails with a domain.ExtractionError and
// leaves nothing behind.
func (e *PDF) Extract(data []byte) ([]domain.Page, error) {
	if len(data) == 0 {
		return nil, &domain.ExtractionError{Err: fmt.Errorf("empty document")}
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &domain.ExtractionError{Err: err}
	}

	total := reader.NumPage()
	pages := make([]domain.Page, 0, total)
	for n := 1; n <= total; n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			pages = append(pages, domain.Page{Number: n})
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, &domain.ExtractionError{Err: fmt.Errorf("page %d: %w", n, err)}
		}
		pages = append(pages, domain.Page{Number: n, Text: text})
	}
	return pages, nil
}
