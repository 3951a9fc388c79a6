package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docrag/internal/adapter/segmenter"
	"docrag/internal/domain"
)

var (
	inspectFile   string
	inspectChunks bool
	inspectJSON   bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show extraction and chunking stats for a document",
	Long: `Extract and segment a document without embedding it. Useful for
checking what the pipeline will see before spending API calls.

Examples:
  docrag inspect -f report.pdf
  docrag inspect -f report.pdf --chunks --json`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectFile, "file", "f", "", "document to inspect (required)")
	inspectCmd.Flags().BoolVar(&inspectChunks, "chunks", false, "list every chunk")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output as JSON")
	inspectCmd.MarkFlagRequired("file")
}

type inspectReport struct {
	Pages      int            `json:"pages"`
	EmptyPages int            `json:"empty_pages"`
	Chunks     int            `json:"chunks"`
	Sections   map[string]int `json:"sections"`
	Detail     []domain.Chunk `json:"detail,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	data, err := os.ReadFile(inspectFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inspectFile, err)
	}

	pages, err := newExtractor(inspectFile).Extract(data)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	seg, err := segmenter.New(cfg.Segment.ChunkChars(), cfg.Segment.OverlapChars())
	if err != nil {
		return fmt.Errorf("invalid segment config: %w", err)
	}
	chunks := seg.Segment(pages)

	report := inspectReport{
		Pages:    len(pages),
		Chunks:   len(chunks),
		Sections: make(map[string]int),
	}
	for _, p := range pages {
		if p.Text == "" {
			report.EmptyPages++
		}
	}
	for _, c := range chunks {
		report.Sections[c.Section]++
	}
	if inspectChunks {
		report.Detail = chunks
	}

	if inspectJSON {
		output, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Pages:  %d (%d empty)\n", report.Pages, report.EmptyPages)
	fmt.Printf("Chunks: %d (window %d chars, overlap %d chars)\n",
		report.Chunks, cfg.Segment.ChunkChars(), cfg.Segment.OverlapChars())
	fmt.Println("Sections:")
	for name, count := range report.Sections {
		fmt.Printf("  %-40s %d\n", name, count)
	}
	if inspectChunks {
		fmt.Println()
		for _, c := range chunks {
			text := c.Text
			if len(text) > 120 {
				text = text[:120] + "..."
			}
			fmt.Printf("--- chunk %d [Page %d, Section: %s] ---\n%s\n\n", c.ID, c.Page, c.Section, text)
		}
	}
	return nil
}
