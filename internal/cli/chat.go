package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"docrag/internal/adapter/cache"
	"docrag/internal/adapter/retriever"
	"docrag/internal/domain"
	"docrag/internal/tui"
	"docrag/internal/usecase"
)

var chatFile string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question session over one document",
	Long: `Ingest a document once and ask questions interactively. Repeated
questions hit a retrieval cache instead of re-embedding the query.

Example:
  docrag chat -f report.pdf`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatFile, "file", "f", "", "document to ingest (required)")
	chatCmd.MarkFlagRequired("file")
}

type chatService struct {
	answer  *usecase.Answer
	session *usecase.Session
}

func (s *chatService) Answer(question string) (domain.Answer, error) {
	return s.answer.Run(question, s.session)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	logger := GetLogger()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	session, err := ingestFile(chatFile, cfg, embedder, logger)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	llm, err := newLLM(cfg)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal; route logs away from it.
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	answerUC := usecase.NewAnswer(
		retriever.NewSemantic(embedder, quiet),
		llm,
		cache.New(cfg.Retrieve.CacheSize),
		cfg.Retrieve.TopK,
		quiet,
	)

	summary := fmt.Sprintf("%s: %d pages, %d chunks (%s)",
		chatFile, session.PageCount(), len(session.Chunks), embedder.ModelName())

	model := tui.New(&chatService{answer: answerUC, session: session}, summary)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}
