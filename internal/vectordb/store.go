package vectordb

import "context"

// Store is the vector collection boundary used by the ingestion pipeline and
// the retriever.
type Store interface {
	// Upsert embeds and stores the chunks of one file, returning how many
	// survived length filtering and deduplication. Repeated ids overwrite
	// earlier records instead of duplicating them.
	Upsert(ctx context.Context, chunks []Chunk, fileName string) (int, error)

	// Query returns the nResults nearest chunks to the prompt by cosine
	// distance, closest first.
	Query(ctx context.Context, prompt string, nResults int) ([]QueryResult, error)

	// Count returns the number of stored records.
	Count() int

	// DeleteFile removes every record ingested from the named file.
	DeleteFile(ctx context.Context, fileName string) error

	// Reset deletes every stored record and the collection itself.
	Reset(ctx context.Context) error
}
