package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/yma-ai/yma/internal/config"
	"github.com/yma-ai/yma/internal/progress"
	"github.com/yma-ai/yma/internal/rag"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path...]",
	Short: "Index PDF documents into the semantic store",
	Long: `Extracts text, structure and figures from each PDF, splits the text
into overlapping chunks, embeds them and stores them in the local
vector index. Files whose content was already ingested are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := collectDocuments(args, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No matching documents found.")
		return nil
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	hist, err := openHistory(cfg)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer hist.Close()

	pipeline := rag.NewPipeline(store, hist, createOCRFromConfig(cfg), splitterConfig(cfg))

	reporter := progress.NewReporter()
	reporter.Start(len(files))

	var ingested, skipped, failed, chunks int
	var failures []error
	for i, path := range files {
		reporter.Update(i+1, filepath.Base(path))

		res, err := pipeline.ProcessFile(ctx, path)
		switch {
		case err != nil:
			failed++
			failures = append(failures, fmt.Errorf("%s: %w", filepath.Base(path), err))
		case res.Skipped:
			skipped++
		default:
			ingested++
			chunks += res.Chunks
		}
	}
	reporter.Finish()

	fmt.Println()
	fmt.Println("Ingestion complete!")
	fmt.Printf("  Documents indexed: %d\n", ingested)
	fmt.Printf("  Skipped unchanged: %d\n", skipped)
	fmt.Printf("  Failed:            %d\n", failed)
	fmt.Printf("  Chunks stored:     %d\n", chunks)
	fmt.Printf("  Duration:          %s\n", time.Since(start).Round(time.Millisecond))

	if len(failures) > 0 {
		fmt.Fprintf(os.Stderr, "\nFailures (%d):\n", len(failures))
		for _, e := range failures {
			fmt.Fprintf(os.Stderr, "  - %v\n", e)
		}
	}
	return nil
}

// collectDocuments expands the argument list into matching document paths.
// Directories are walked recursively and filtered by the configured
// include/exclude globs; explicit file arguments bypass the filter.
func collectDocuments(args []string, cfg *config.Config) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("accessing %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		root := arg
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if matchesAny(cfg.Exclude, rel) || !matchesAny(cfg.Include, rel) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}
	return files, nil
}

func matchesAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}
