package config

// DefaultExcludes are glob patterns skipped during ingestion by default.
var DefaultExcludes = []string{
	"**/.*",
	"**/~$*",
}

// DefaultConfig returns a Config with sensible defaults: local Ollama for
// both generation and embeddings, so the pipeline runs without any API key.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOllama,
		Model:             "mistral",
		EmbeddingProvider: ProviderOllama,
		EmbeddingModel:    "nomic-embed-text",
		OllamaURL:         "http://localhost:11434",

		DataDir: ".yma",
		Include: []string{"**/*.pdf"},
		Exclude: DefaultExcludes,

		ChunkSize:       1000,
		ChunkOverlap:    200,
		MinChunkLength:  30,
		NResults:        10,
		TopK:            3,
		MaxContextChars: 12000,

		RerankModel: "BAAI/bge-reranker-base",

		OCR: OCRConfig{
			Enabled: true,
			Binary:  "tesseract",
		},
	}
}
