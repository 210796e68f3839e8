package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yma-ai/yma/internal/config"
	"github.com/yma-ai/yma/internal/pdf"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "yma",
	Short: "Question answering over your PDF library",
	Long: `yma ingests PDF documents into a local semantic index and answers
questions about them. Retrieval pulls the most relevant passages,
an optional cross-encoder reranks them, and a language model streams
an answer grounded in the retrieved text.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; explicit environment always wins.
		_ = godotenv.Load()

		if key := os.Getenv("UNIDOC_LICENSE_API_KEY"); key != "" {
			if err := pdf.SetLicense(key); err != nil {
				return fmt.Errorf("setting PDF license: %w", err)
			}
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
