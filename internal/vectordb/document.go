// Package vectordb stores document chunks and their embeddings in an
// embedded vector database.
package vectordb

// Chunk is one bounded span of a document's normalized text, together with
// the metadata inherited from its parent document. Chunks are immutable once
// created; positional fields (chunk id, length) are added at upsert time.
type Chunk struct {
	Text     string
	Metadata map[string]any
}

// QueryResult is one retrieved chunk with its source attribution, ordered by
// ascending cosine distance (closest first).
type QueryResult struct {
	Text       string
	SourceFile string
	Page       string
	Distance   float32
}
