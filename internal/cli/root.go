package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"docrag/config"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docrag",
	Short: "DocRAG - ask questions about a document, answered only from its text",
	Long: `DocRAG ingests a PDF or plain-text document, splits it into overlapping
chunks, embeds them, and answers questions using only the retrieved chunks
as evidence. Every answer cites the page and section it came from.

Example usage:
  docrag ask -f report.pdf -q "What are the main risk factors?"
  docrag chat -f report.pdf              # Interactive session
  docrag inspect -f report.pdf           # Show extraction and chunk stats`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log = logrus.New()
		log.SetOutput(os.Stderr)
		log.SetFormatter(&logrus.JSONFormatter{})
		level, lerr := logrus.ParseLevel(cfg.Logging.Level)
		if lerr != nil {
			level = logrus.InfoLevel
		}
		log.SetLevel(level)

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./docrag.yaml)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetLogger() *logrus.Logger {
	return log
}
