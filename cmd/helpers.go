package cmd

import (
	"fmt"
	"os"

	"github.com/yma-ai/yma/internal/config"
	"github.com/yma-ai/yma/internal/embeddings"
	"github.com/yma-ai/yma/internal/history"
	"github.com/yma-ai/yma/internal/llm"
	"github.com/yma-ai/yma/internal/ocr"
	"github.com/yma-ai/yma/internal/rerank"
	"github.com/yma-ai/yma/internal/splitter"
	"github.com/yma-ai/yma/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `yma init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}

	switch provider {
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, cfg.EmbeddingModel), nil
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(cfg.EmbeddingModel, cfg.OllamaURL), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider %q", provider)
	}
}

// createProviderFromConfig creates the chat provider based on config.
func createProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	apiKey := os.Getenv(config.APIKeyEnvVar(cfg.Provider))
	return llm.NewProvider(string(cfg.Provider), cfg.Model, cfg.OllamaURL, apiKey)
}

// createRerankerFromConfig returns nil when no rerank endpoint is configured.
func createRerankerFromConfig(cfg *config.Config) rerank.Reranker {
	if cfg.RerankURL == "" {
		return nil
	}
	return rerank.NewHTTPReranker(cfg.RerankURL, cfg.RerankModel)
}

// createOCRFromConfig returns nil when OCR is disabled or the binary is
// missing, so ingestion degrades to text-only.
func createOCRFromConfig(cfg *config.Config) ocr.Engine {
	if !cfg.OCR.Enabled {
		return nil
	}
	engine := ocr.NewTesseract(cfg.OCR.Binary)
	if !engine.Detect() {
		fmt.Fprintf(os.Stderr, "Warning: %s not found, skipping figure OCR\n", cfg.OCR.Binary)
		return nil
	}
	return engine
}

// openStore opens the persistent vector collection.
func openStore(cfg *config.Config) (vectordb.Store, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	store, err := vectordb.NewChromemStore(cfg.VectorDBPath(), embedder, cfg.MinChunkLength)
	if err != nil {
		return nil, fmt.Errorf("opening vector store: %w", err)
	}
	return store, nil
}

// openHistory opens the ingest-history database.
func openHistory(cfg *config.Config) (*history.Store, error) {
	return history.Open(cfg.HistoryDBPath(), cfg.ReasoningDir())
}

// splitterConfig builds the chunking configuration from config values.
func splitterConfig(cfg *config.Config) splitter.Config {
	sc := splitter.DefaultConfig()
	sc.ChunkSize = cfg.ChunkSize
	sc.Overlap = cfg.ChunkOverlap
	return sc
}
