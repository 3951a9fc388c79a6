package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"docrag/internal/adapter/retriever"
	"docrag/internal/domain"
	"docrag/internal/usecase"
)

var (
	askFile     string
	askQuestion string
	askTopK     int
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a single question about a document",
	Long: `Ingest a document and answer one question grounded in its text.

Examples:
  docrag ask -f report.pdf -q "What are the main risk factors?"
  docrag ask -f notes.txt -q "Who approved the budget?" -k 3 --json`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askFile, "file", "f", "", "document to ingest (required)")
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "question to answer (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output as JSON")
	askCmd.MarkFlagRequired("file")
	askCmd.MarkFlagRequired("question")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	logger := GetLogger()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	session, err := ingestFile(askFile, cfg, embedder, logger)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	topK := cfg.Retrieve.TopK
	if askTopK > 0 {
		topK = askTopK
	}

	llm, err := newLLM(cfg)
	if err != nil {
		return err
	}

	answerUC := usecase.NewAnswer(retriever.NewSemantic(embedder, logger), llm, nil, topK, logger)
	answer, err := answerUC.Run(askQuestion, session)
	if err != nil {
		var genErr *domain.GenerationError
		if errors.As(err, &genErr) && len(answer.Retrieved) > 0 {
			fmt.Println("Generation failed; retrieved evidence:")
			printSources(answer.Retrieved)
		}
		return fmt.Errorf("answer failed: %w", err)
	}

	if askJSON {
		output, _ := json.MarshalIndent(answer, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Println(answer.Text)
	if len(answer.Retrieved) > 0 {
		fmt.Println("\nSources:")
		printSources(answer.Retrieved)
	}
	return nil
}

func printSources(results []domain.RetrievalResult) {
	for i, r := range results {
		fmt.Printf("  [%d] Page %d, Section: %s (similarity %.2f)\n", i+1, r.Page, r.Section, r.Score)
	}
}
