package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List ingested documents",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(historyCmd)
}

type historyEntryJSON struct {
	FileName    string `json:"file_name"`
	ContentHash string `json:"content_hash"`
	IngestedAt  string `json:"ingested_at"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	hist, err := openHistory(cfg)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer hist.Close()

	files, err := hist.List()
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		out := make([]historyEntryJSON, 0, len(files))
		for _, f := range files {
			out = append(out, historyEntryJSON{
				FileName:    f.FileName,
				ContentHash: f.ContentHash,
				IngestedAt:  f.IngestedAt.Format("2006-01-02 15:04:05"),
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(files) == 0 {
		fmt.Println("No documents ingested yet.")
		return nil
	}

	fmt.Printf("Ingested documents (%d):\n\n", len(files))
	for _, f := range files {
		fmt.Printf("  %s  %s  %s\n", f.IngestedAt.Format("2006-01-02 15:04"), f.ContentHash[:12], f.FileName)
	}
	return nil
}
