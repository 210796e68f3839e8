package vectordb

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/yma-ai/yma/internal/embeddings"
)

const collectionName = "yma_documents"

// DefaultMinChunkLength is the minimum chunk text length stored; anything
// shorter carries too little meaning to retrieve.
const DefaultMinChunkLength = 30

// ChromemStore implements Store on top of chromem-go.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedder   embeddings.Embedder
	embedFunc  chromem.EmbeddingFunc
	minLength  int
}

// NewChromemStore opens (or creates) a persistent chromem database at path.
// An empty path creates an in-memory store, which tests rely on. minLength
// <= 0 falls back to DefaultMinChunkLength.
func NewChromemStore(path string, embedder embeddings.Embedder, minLength int) (*ChromemStore, error) {
	if minLength <= 0 {
		minLength = DefaultMinChunkLength
	}

	var db *chromem.DB
	var err error
	if path == "" {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(path, true)
		if err != nil {
			return nil, fmt.Errorf("opening vector db at %s: %w", path, err)
		}
	}

	ef := embeddings.ToChromemFunc(embedder)
	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &ChromemStore{
		db:         db,
		collection: col,
		embedder:   embedder,
		embedFunc:  ef,
		minLength:  minLength,
	}, nil
}

// Upsert filters, deduplicates, embeds, and stores the chunks of one file.
// Chunk ids are `{fileName}_{idx}` where idx is the chunk's position before
// filtering, so ids stay stable across reprocessing of unchanged content.
// Identical text appearing twice within the batch is stored once.
func (s *ChromemStore) Upsert(ctx context.Context, chunks []Chunk, fileName string) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	var docs []chromem.Document
	var texts []string
	seen := make(map[[sha256.Size]byte]struct{})

	for idx, chunk := range chunks {
		text := strings.TrimSpace(chunk.Text)
		if len(text) < s.minLength {
			continue
		}

		hash := sha256.Sum256([]byte(text))
		if _, dup := seen[hash]; dup {
			continue
		}
		seen[hash] = struct{}{}

		metadata := flattenMetadata(chunk.Metadata)
		metadata["source_file"] = fileName
		metadata["chunk_id"] = strconv.Itoa(idx)
		metadata["text_length"] = strconv.Itoa(len(text))

		docs = append(docs, chromem.Document{
			ID:       fmt.Sprintf("%s_%d", fileName, idx),
			Content:  text,
			Metadata: metadata,
		})
		texts = append(texts, text)
	}

	if len(docs) == 0 {
		return 0, nil
	}

	// Embed the whole batch in one call and attach the vectors, so the
	// store never re-embeds chunk text one by one.
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding chunks of %s: %w", fileName, err)
	}
	if len(vectors) != len(docs) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d chunks of %s", len(vectors), len(docs), fileName)
	}
	for i := range docs {
		docs[i].Embedding = vectors[i]
	}

	if err := s.collection.AddDocuments(ctx, docs, 1); err != nil {
		return 0, fmt.Errorf("upserting %s: %w", fileName, err)
	}
	return len(docs), nil
}

// Query runs a cosine similarity search and attaches source-file and page
// metadata to every result, preserving distance order.
func (s *ChromemStore) Query(ctx context.Context, prompt string, nResults int) ([]QueryResult, error) {
	if nResults <= 0 {
		nResults = 10
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if nResults > count {
		nResults = count
	}

	results, err := s.collection.Query(ctx, prompt, nResults, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]QueryResult, len(results))
	for i, r := range results {
		out[i] = QueryResult{
			Text:       r.Content,
			SourceFile: metadataOr(r.Metadata, "source_file", "unknown"),
			Page:       metadataOr(r.Metadata, "page", "unknown"),
			Distance:   1 - r.Similarity,
		}
	}
	return out, nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

// DeleteFile removes every record ingested from the named file.
func (s *ChromemStore) DeleteFile(ctx context.Context, fileName string) error {
	where := map[string]string{"source_file": fileName}
	if err := s.collection.Delete(ctx, where, nil); err != nil {
		return fmt.Errorf("deleting records of %s: %w", fileName, err)
	}
	return nil
}

// Reset deletes all collections and their persisted files, then recreates an
// empty collection so the store stays usable.
func (s *ChromemStore) Reset(ctx context.Context) error {
	if err := s.db.Reset(); err != nil {
		return fmt.Errorf("resetting vector db: %w", err)
	}
	col, err := s.db.GetOrCreateCollection(collectionName, nil, s.embedFunc)
	if err != nil {
		return fmt.Errorf("recreating collection: %w", err)
	}
	s.collection = col
	return nil
}

// flattenMetadata converts chunk metadata to the flat string map chromem
// accepts. List values are joined into a single string because the storage
// layer does not take nested structures.
func flattenMetadata(m map[string]any) map[string]string {
	out := make(map[string]string, len(m)+3)
	for k, val := range m {
		switch v := val.(type) {
		case string:
			out[k] = v
		case []string:
			out[k] = strings.Join(v, "; ")
		case []any:
			parts := make([]string, len(v))
			for i, item := range v {
				parts[i] = fmt.Sprint(item)
			}
			out[k] = strings.Join(parts, "; ")
		case int:
			out[k] = strconv.Itoa(v)
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}

func metadataOr(m map[string]string, key, fallback string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return fallback
}
