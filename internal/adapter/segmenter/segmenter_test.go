package segmenter

import (
	"strings"
	"testing"

	"docrag/internal/domain"
)

func TestNewRejectsBadGeometry(t *testing.T) {
	cases := []struct {
		name    string
		chunk   int
		overlap int
		wantErr bool
	}{
		{"valid", 2000, 200, false},
		{"zero overlap", 100, 0, false},
		{"zero chunk", 0, 0, true},
		{"negative overlap", 100, -1, true},
		{"overlap equals chunk", 100, 100, true},
		{"overlap exceeds chunk", 100, 150, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.chunk, tc.overlap)
			if tc.wantErr && err == nil {
				t.Errorf("New(%d, %d): expected error, got nil", tc.chunk, tc.overlap)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("New(%d, %d): unexpected error: %v", tc.chunk, tc.overlap, err)
			}
		})
	}
}

func TestSegmentShortPage(t *testing.T) {
	seg, err := New(2000, 200)
	if err != nil {
		t.Fatal(err)
	}

	pages := []domain.Page{
		{Number: 1, Text: "RISK FACTORS\nOur revenue depends on a small number of customers."},
	}

	chunks := seg.Segment(pages)
	if len(chunks) != 1 {
		t.Fatalf("expected exactly one chunk, got %d", len(chunks))
	}
	c := chunks[0]
	if c.ID != 0 {
		t.Errorf("expected id 0, got %d", c.ID)
	}
	if c.Page != 1 {
		t.Errorf("expected page 1, got %d", c.Page)
	}
	if c.Section != "RISK FACTORS" {
		t.Errorf("expected section 'RISK FACTORS', got %q", c.Section)
	}
}

func TestSegmentWindowCoverage(t *testing.T) {
	const chunkChars, overlapChars = 10, 3
	seg, err := New(chunkChars, overlapChars)
	if err != nil {
		t.Fatal(err)
	}

	// No whitespace, so trimming never shrinks a window and every window
	// survives as a chunk.
	text := "abcdefghijklmnopqrstuvwxy" // 25 chars
	chunks := seg.Segment([]domain.Page{{Number: 1, Text: text}})

	step := chunkChars - overlapChars
	wantStarts := []int{0, 7, 14, 21}
	if len(chunks) != len(wantStarts) {
		t.Fatalf("expected %d chunks, got %d", len(wantStarts), len(chunks))
	}

	for i, c := range chunks {
		start := wantStarts[i]
		end := start + chunkChars
		if end > len(text) {
			end = len(text)
		}
		if c.Text != text[start:end] {
			t.Errorf("chunk %d: expected window %q, got %q", i, text[start:end], c.Text)
		}
		if i > 0 {
			prev := chunks[i-1]
			overlap := prev.Text[len(prev.Text)-overlapChars:]
			if !strings.HasPrefix(c.Text, overlap) {
				t.Errorf("chunk %d does not start with the %d-char overlap %q", i, overlapChars, overlap)
			}
		}
		if start != i*step {
			t.Errorf("chunk %d: window start %d, expected %d", i, start, i*step)
		}
	}

	// The reassembled windows must cover the whole text.
	covered := chunks[0].Text
	for i := 1; i < len(chunks); i++ {
		covered += chunks[i].Text[overlapChars:]
	}
	if covered != text {
		t.Errorf("windows do not cover the text: got %q", covered)
	}
}

func TestSegmentDropsEmptyWindows(t *testing.T) {
	seg, err := New(4, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Middle windows are pure whitespace and must be dropped while the
	// cursor still advances.
	text := "ab  " + strings.Repeat(" ", 8) + "  cd"
	chunks := seg.Segment([]domain.Page{{Number: 1, Text: text}})

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "ab" || chunks[1].Text != "cd" {
		t.Errorf("unexpected chunk texts: %q, %q", chunks[0].Text, chunks[1].Text)
	}
	for i, c := range chunks {
		if c.ID != i {
			t.Errorf("ids not dense: chunk %d has id %d", i, c.ID)
		}
	}
}

func TestSegmentIDsDenseAcrossPages(t *testing.T) {
	seg, err := New(8, 2)
	if err != nil {
		t.Fatal(err)
	}

	pages := []domain.Page{
		{Number: 1, Text: "aaaaaaaaaaaaaaa"},
		{Number: 2, Text: ""},
		{Number: 3, Text: "bbbbbbbbbb"},
	}

	chunks := seg.Segment(pages)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for i, c := range chunks {
		if c.ID != i {
			t.Errorf("chunk %d has id %d, ids must be dense and 0-based", i, c.ID)
		}
		if c.Text == "" {
			t.Errorf("chunk %d is empty", i)
		}
		if c.Page == 2 {
			t.Errorf("chunk %d assigned to the empty page", i)
		}
	}

	// A page-1 chunk must never carry page-3 text and vice versa.
	for _, c := range chunks {
		switch c.Page {
		case 1:
			if strings.Contains(c.Text, "b") {
				t.Errorf("page 1 chunk contains page 3 text: %q", c.Text)
			}
		case 3:
			if strings.Contains(c.Text, "a") {
				t.Errorf("page 3 chunk contains page 1 text: %q", c.Text)
			}
		}
	}
}

func TestDetectSection(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"upper case heading", "RISK FACTORS\nbody text follows", "RISK FACTORS"},
		{"title case heading", "Management Discussion\nbody text follows", "Management Discussion"},
		{"title case too long", "One Two Three Four Five Six Seven Eight Nine\nbody", FallbackSection},
		{"short line skipped", "ABC\nLIQUIDITY\nbody", "LIQUIDITY"},
		{"lower case only", "plain paragraph text\nmore text", FallbackSection},
		{"heading beyond five lines", "a\nb\nc\nd\ne\nRISK FACTORS", FallbackSection},
		{"upper beats later title", "QUARTERLY RESULTS\nNet Income\nbody", "QUARTERLY RESULTS"},
		{"mixed case rejected", "RISk FACTORS are described\nhere", FallbackSection},
		{"empty text", "", FallbackSection},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectSection(tc.text); got != tc.want {
				t.Errorf("DetectSection(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestSegmentDeterministic(t *testing.T) {
	seg, err := New(12, 4)
	if err != nil {
		t.Fatal(err)
	}
	pages := []domain.Page{
		{Number: 1, Text: "HEADING\nsome body text that spans several windows here"},
	}

	first := seg.Segment(pages)
	second := seg.Segment(pages)

	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
