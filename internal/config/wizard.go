package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// modelPresets suggests a chat and embedding model per provider.
var modelPresets = map[ProviderType]struct {
	Model          string
	EmbeddingModel string
}{
	ProviderOllama: {Model: "mistral", EmbeddingModel: "nomic-embed-text"},
	ProviderOpenAI: {Model: "gpt-4o-mini", EmbeddingModel: "text-embedding-3-small"},
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .yma.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to yma! Let's configure your document library.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"ollama", "openai"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)
	cfg.EmbeddingProvider = cfg.Provider

	preset := modelPresets[cfg.Provider]

	// 2. Chat model.
	modelPrompt := promptui.Prompt{
		Label:   "Chat model",
		Default: preset.Model,
	}
	if cfg.Model, err = modelPrompt.Run(); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	// 3. Embedding model.
	embPrompt := promptui.Prompt{
		Label:   "Embedding model",
		Default: preset.EmbeddingModel,
	}
	if cfg.EmbeddingModel, err = embPrompt.Run(); err != nil {
		return nil, fmt.Errorf("embedding model: %w", err)
	}

	// 4. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory for the index and history",
		Default: cfg.DataDir,
	}
	if cfg.DataDir, err = dataPrompt.Run(); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 5. Reranker endpoint, optional.
	rerankPrompt := promptui.Prompt{
		Label:   "Reranker endpoint URL (leave blank to disable)",
		Default: "",
	}
	if cfg.RerankURL, err = rerankPrompt.Run(); err != nil {
		return nil, fmt.Errorf("rerank url: %w", err)
	}
	cfg.RerankURL = strings.TrimSpace(cfg.RerankURL)

	// 6. Figure OCR.
	ocrPrompt := promptui.Select{
		Label: "Run OCR on embedded figures (requires tesseract)",
		Items: []string{"yes", "no"},
	}
	ocrIdx, _, err := ocrPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("ocr selection: %w", err)
	}
	cfg.OCR.Enabled = ocrIdx == 0

	// Check for API key.
	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running yma ask.\n", envVar)
	}

	if err := cfg.Save(DefaultPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultPath)
	return cfg, nil
}
