// Package embeddings turns chunk text into vectors via external embedding
// services.
package embeddings

import "context"

// Embedder generates one embedding vector per input text. Implementations
// wrap an external service and are injected so tests can fake them.
type Embedder interface {
	// Embed generates embeddings for a batch of texts, one vector per text.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Name returns the name/identifier of the embedding model.
	Name() string
}
