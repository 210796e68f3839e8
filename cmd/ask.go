package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yma-ai/yma/internal/history"
	"github.com/yma-ai/yma/internal/rag"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the ingested documents",
	Long: `Retrieves the most relevant chunks for the question, reranks them when
a rerank endpoint is configured, and streams a grounded answer. The
answer and its sources are saved as a reasoning record.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Int("results", 0, "number of chunks retrieved before reranking (overrides config)")
	askCmd.Flags().Int("top", 0, "number of chunks sent to the model (overrides config)")
	askCmd.Flags().Bool("json", false, "output the answer and sources as JSON")
	askCmd.Flags().Bool("no-save", false, "do not save a reasoning record")
	rootCmd.AddCommand(askCmd)
}

type askResultJSON struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Sources  []string `json:"sources"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	question := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if nResults, _ := cmd.Flags().GetInt("results"); nResults > 0 {
		cfg.NResults = nResults
	}
	if topK, _ := cmd.Flags().GetInt("top"); topK > 0 {
		cfg.TopK = topK
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	noSave, _ := cmd.Flags().GetBool("no-save")

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	if store.Count() == 0 {
		fmt.Println("The index is empty. Run `yma ingest` first.")
		return nil
	}

	provider, err := createProviderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating LLM provider: %w", err)
	}

	answerer := rag.NewAnswerer(store, createRerankerFromConfig(cfg), provider, rag.AnswererOptions{
		NResults:        cfg.NResults,
		TopK:            cfg.TopK,
		MaxContextChars: cfg.MaxContextChars,
	})

	ans, err := answerer.Ask(ctx, question)
	if err != nil {
		return err
	}
	if ans.NoResults {
		fmt.Println("No relevant passages found for this question.")
		return nil
	}

	var answer strings.Builder
	for fragment := range ans.Stream {
		if !jsonOutput {
			fmt.Print(fragment)
		}
		answer.WriteString(fragment)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(askResultJSON{
			Question: question,
			Answer:   answer.String(),
			Sources:  ans.Sources,
		}); err != nil {
			return err
		}
	} else {
		fmt.Println()
		if len(ans.Sources) > 0 {
			fmt.Printf("\nSources: %s\n", strings.Join(ans.Sources, ", "))
		}
	}

	if noSave {
		return nil
	}

	hist, err := openHistory(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history: %v\n", err)
		return nil
	}
	defer hist.Close()

	sourceFile := ""
	if len(ans.Sources) > 0 {
		sourceFile = ans.Sources[0]
	}
	path, err := hist.SaveReasoning(history.ReasoningRecord{
		FileName: sourceFile,
		Prompt:   question,
		Answer:   answer.String(),
		Sources:  ans.Sources,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save reasoning record: %v\n", err)
		return nil
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Reasoning record saved to %s\n", path)
	}
	return nil
}
