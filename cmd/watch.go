package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/yma-ai/yma/internal/rag"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and ingest new documents as they appear",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	match := func(path string) bool {
		base := filepath.Base(path)
		for _, p := range cfg.Include {
			// Watch events carry bare paths; match against the last
			// pattern segment.
			if ok, err := doublestar.Match(filepath.Base(p), base); err == nil && ok {
				return true
			}
		}
		return false
	}

	onChange := func(path string) {
		res, err := pipeline.ProcessFile(ctx, path)
		switch {
		case err != nil:
			fmt.Fprintf(os.Stderr, "Failed to ingest %s: %v\n", filepath.Base(path), err)
		case res.Skipped:
			fmt.Printf("Unchanged, skipping %s\n", res.FileName)
		default:
			fmt.Printf("Ingested %s (%d chunks)\n", res.FileName, res.Chunks)
		}
	}

	onRemove := func(path string) {
		name := filepath.Base(path)
		if err := pipeline.RemoveFile(ctx, name); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to remove %s from the index: %v\n", name, err)
			return
		}
		fmt.Printf("Removed %s from the index\n", name)
	}

	err = rag.Watch(ctx, dir, match, onChange, onRemove)
	if err == context.Canceled {
		fmt.Println("\nStopped.")
		return nil
	}
	return err
}
