package segmenter

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"docrag/internal/domain"
)

// FallbackSection labels chunks where no heading-shaped line was found.
const FallbackSection = "Body"

// Segmenter slides a fixed-size character window across each page's text.
// A chunk never spans two pages. Pure and stateless: the same pages always
// yield the same chunk sequence.
type Segmenter struct {
	chunkChars   int
	overlapChars int
}

// New validates the window geometry. The cursor advances by
// chunkChars-overlapChars per step, so the overlap must stay strictly below
// the chunk size for the loop to terminate.
func New(chunkChars, overlapChars int) (*Segmenter, error) {
	if chunkChars <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkChars)
	}
	if overlapChars < 0 {
		return nil, fmt.Errorf("overlap must not be negative, got %d", overlapChars)
	}
	if overlapChars >= chunkChars {
		return nil, fmt.Errorf("overlap %d must be smaller than chunk size %d", overlapChars, chunkChars)
	}
	return &Segmenter{
		chunkChars:   chunkChars,
		overlapChars: overlapChars,
	}, nil
}

// Segment emits chunks in page order with dense 0-based ids. Windows whose
// text trims to empty are dropped, but the cursor still advances by the
// full step. The last window of a page may be shorter than the nominal
// chunk size; that is intentional and not special-cased.
func (s *Segmenter) Segment(pages []domain.Page) []domain.Chunk {
	step := s.chunkChars - s.overlapChars

	var chunks []domain.Chunk
	id := 0

	for _, page := range pages {
		text := []rune(page.Text)
		for start := 0; start < len(text); start += step {
			end := start + s.chunkChars
			if end > len(text) {
				end = len(text)
			}
			chunkText := strings.TrimSpace(string(text[start:end]))
			if chunkText == "" {
				continue
			}
			chunks = append(chunks, domain.Chunk{
				ID:      id,
				Page:    page.Number,
				Section: DetectSection(chunkText),
				Text:    chunkText,
			})
			id++
		}
	}

	return chunks
}

// DetectSection scans at most the first 5 lines of a chunk for a
// heading-shaped line: longer than 3 characters and either fully upper-case
// or title-case with at most 8 words. The upper-case check runs before the
// title-case check; PDFs with ambiguous headings are common and the rule
// order is part of the contract.
func DetectSection(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= 3 {
			continue
		}
		if isUpper(line) {
			return line
		}
		if isTitle(line) && len(strings.Fields(line)) <= 8 {
			return line
		}
	}
	return FallbackSection
}

// isUpper reports whether the line contains at least one cased letter and
// no lower-case letters.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// isTitle reports whether every cased run starts with an upper-case rune
// followed only by lower-case runes.
func isTitle(s string) bool {
	cased := false
	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			cased = true
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			cased = true
		default:
			prevCased = false
		}
	}
	return cased
}
