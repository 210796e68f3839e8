package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yma-ai/yma/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create a .yma.yml configuration",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(config.DefaultPath); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", config.DefaultPath)
	}

	if _, err := config.RunWizard(); err != nil {
		return fmt.Errorf("configuration wizard: %w", err)
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  yma ingest <dir-or-file>   index your documents")
	fmt.Println("  yma ask \"<question>\"       ask about them")
	return nil
}
