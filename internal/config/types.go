package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderOllama ProviderType = "ollama"
	ProviderOpenAI ProviderType = "openai"
)

// Config is the top-level configuration, corresponding to .yma.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	OllamaURL         string       `yaml:"ollama_url" koanf:"ollama_url"`

	DataDir string   `yaml:"data_dir" koanf:"data_dir"`
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`

	ChunkSize       int `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap    int `yaml:"chunk_overlap" koanf:"chunk_overlap"`
	MinChunkLength  int `yaml:"min_chunk_length" koanf:"min_chunk_length"`
	NResults        int `yaml:"n_results" koanf:"n_results"`
	TopK            int `yaml:"top_k" koanf:"top_k"`
	MaxContextChars int `yaml:"max_context_chars" koanf:"max_context_chars"`

	RerankURL   string `yaml:"rerank_url" koanf:"rerank_url"`
	RerankModel string `yaml:"rerank_model" koanf:"rerank_model"`

	OCR OCRConfig `yaml:"ocr" koanf:"ocr"`
}

// OCRConfig holds figure-OCR settings.
type OCRConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Binary  string `yaml:"binary" koanf:"binary"`
}
