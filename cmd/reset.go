package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the index, ingest history and reasoning records",
	Long: `Clears every stored artifact: the vector collection, the list of
ingested documents and all saved reasoning records. Each step is
attempted even if an earlier one fails, and every failure is reported.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Printf("This deletes all indexed data under %s. Continue? [y/N] ", cfg.DataDir)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	var failures []error

	if store, err := openStore(cfg); err != nil {
		failures = append(failures, fmt.Errorf("vector store: %w", err))
	} else if err := store.Reset(ctx); err != nil {
		failures = append(failures, fmt.Errorf("vector store: %w", err))
	} else {
		fmt.Println("Vector store cleared.")
	}

	if hist, err := openHistory(cfg); err != nil {
		failures = append(failures, fmt.Errorf("history: %w", err))
	} else {
		if err := hist.Reset(); err != nil {
			failures = append(failures, fmt.Errorf("history: %w", err))
		} else {
			fmt.Println("Ingest history and reasoning records cleared.")
		}
		hist.Close()
	}

	if len(failures) > 0 {
		fmt.Fprintf(os.Stderr, "\nReset finished with %d failure(s):\n", len(failures))
		for _, e := range failures {
			fmt.Fprintf(os.Stderr, "  - %v\n", e)
		}
		return fmt.Errorf("reset incomplete")
	}
	return nil
}
