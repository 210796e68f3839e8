package vectordb

import (
	"context"
	"math"
	"strings"
	"testing"
)

// mockEmbedder produces deterministic normalized vectors from text, so
// similar texts get similar vectors without any external service.
type mockEmbedder struct {
	dims int
}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		results[i] = m.vector(text)
	}
	return results, nil
}

func (m *mockEmbedder) Name() string { return "mock" }

func (m *mockEmbedder) vector(text string) []float32 {
	vec := make([]float32, m.dims)
	for i, ch := range text {
		vec[(int(ch)+i)%m.dims] += 1.0
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec
}

func newTestStore(t *testing.T) *ChromemStore {
	t.Helper()
	store, err := NewChromemStore("", &mockEmbedder{dims: 64}, 0)
	if err != nil {
		t.Fatalf("NewChromemStore: %v", err)
	}
	return store
}

func TestUpsertFiltersShortChunks(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	chunks := []Chunk{
		{Text: "too short"},
		{Text: "this chunk is comfortably longer than the thirty character minimum"},
	}

	stored, err := store.Upsert(ctx, chunks, "paper_pdf")
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if stored != 1 {
		t.Errorf("stored %d chunks, want 1", stored)
	}
	if store.Count() != 1 {
		t.Errorf("Count: got %d, want 1", store.Count())
	}
}

func TestUpsertDeduplicatesWithinBatch(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	text := "identical chunk text that appears twice in the same document"
	stored, err := store.Upsert(ctx, []Chunk{{Text: text}, {Text: text}}, "paper_pdf")
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if stored != 1 {
		t.Errorf("stored %d chunks, want 1 after deduplication", stored)
	}
}

func TestUpsertDoesNotDeduplicateAcrossFiles(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	text := "shared boilerplate paragraph appearing in two different documents"
	if _, err := store.Upsert(ctx, []Chunk{{Text: text}}, "first_pdf"); err != nil {
		t.Fatalf("Upsert first: %v", err)
	}
	if _, err := store.Upsert(ctx, []Chunk{{Text: text}}, "second_pdf"); err != nil {
		t.Fatalf("Upsert second: %v", err)
	}

	if store.Count() != 2 {
		t.Errorf("Count: got %d, want 2 distinct records across files", store.Count())
	}
}

func TestUpsertOverwritesSameID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := []Chunk{{Text: "original content of the only chunk in this document here"}}
	second := []Chunk{{Text: "revised content of the only chunk in this document here!"}}

	if _, err := store.Upsert(ctx, first, "paper_pdf"); err != nil {
		t.Fatalf("Upsert first: %v", err)
	}
	if _, err := store.Upsert(ctx, second, "paper_pdf"); err != nil {
		t.Fatalf("Upsert second: %v", err)
	}

	if store.Count() != 1 {
		t.Errorf("Count: got %d, want 1 (same id overwrites)", store.Count())
	}
}

func TestQueryReturnsDistanceOrderWithMetadata(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	chunks := []Chunk{
		{
			Text:     "the gradient descent optimizer converged after forty epochs",
			Metadata: map[string]any{"page": 2},
		},
		{
			Text:     "participants completed a questionnaire about dietary habits",
			Metadata: map[string]any{"page": 7},
		},
	}
	if _, err := store.Upsert(ctx, chunks, "study_pdf"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Querying with the exact text of the first chunk guarantees the mock
	// embedder puts it closest.
	results, err := store.Query(ctx, "the gradient descent optimizer converged after forty epochs", 2)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Distance > results[1].Distance {
		t.Errorf("results not ordered by distance: %f > %f", results[0].Distance, results[1].Distance)
	}
	if !strings.Contains(results[0].Text, "gradient") {
		t.Errorf("closest result should match the query, got %q", results[0].Text)
	}
	if results[0].SourceFile != "study_pdf" {
		t.Errorf("source file not attached: %q", results[0].SourceFile)
	}
	if results[0].Page != "2" {
		t.Errorf("page metadata not attached: %q", results[0].Page)
	}
}

func TestQueryEmptyStore(t *testing.T) {
	store := newTestStore(t)
	results, err := store.Query(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results from empty store, want 0", len(results))
	}
}

func TestResetClearsStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.Upsert(ctx, []Chunk{{Text: "some content long enough to pass the minimum length filter"}}, "paper_pdf"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if store.Count() != 0 {
		t.Errorf("Count after reset: got %d, want 0", store.Count())
	}

	// The store must remain usable after a reset.
	if _, err := store.Upsert(ctx, []Chunk{{Text: "fresh content ingested after the collection was reset fully"}}, "new_pdf"); err != nil {
		t.Fatalf("Upsert after reset: %v", err)
	}
	if store.Count() != 1 {
		t.Errorf("Count after re-upsert: got %d, want 1", store.Count())
	}
}

func TestDeleteFileRemovesOnlyThatFile(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.Upsert(ctx, []Chunk{{Text: "content belonging to the first ingested document in this store"}}, "first_pdf"); err != nil {
		t.Fatalf("Upsert first: %v", err)
	}
	if _, err := store.Upsert(ctx, []Chunk{{Text: "content belonging to the second ingested document in this store"}}, "second_pdf"); err != nil {
		t.Fatalf("Upsert second: %v", err)
	}

	if err := store.DeleteFile(ctx, "first_pdf"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if store.Count() != 1 {
		t.Fatalf("Count after delete: got %d, want 1", store.Count())
	}

	results, err := store.Query(ctx, "content belonging to the second ingested document in this store", 1)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 1 || results[0].SourceFile != "second_pdf" {
		t.Errorf("surviving record %+v, want second_pdf", results)
	}
}

func TestFlattenMetadataListsToStrings(t *testing.T) {
	flat := flattenMetadata(map[string]any{
		"headings": []string{"INTRODUCTION AND MOTIVATION", "RELATED WORK SURVEY"},
		"figures":  []any{1, 2},
		"page":     4,
		"title":    "A Study",
	})

	if flat["headings"] != "INTRODUCTION AND MOTIVATION; RELATED WORK SURVEY" {
		t.Errorf("headings: %q", flat["headings"])
	}
	if flat["figures"] != "1; 2" {
		t.Errorf("figures: %q", flat["figures"])
	}
	if flat["page"] != "4" {
		t.Errorf("page: %q", flat["page"])
	}
	if flat["title"] != "A Study" {
		t.Errorf("title: %q", flat["title"])
	}
}
