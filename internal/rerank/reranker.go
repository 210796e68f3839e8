// Package rerank re-scores retrieved chunks against the user prompt with a
// cross-encoder relevance model.
package rerank

import (
	"context"
	"sort"
	"strings"
)

// Reranker scores (query, document) pairs jointly, returning one relevance
// score per document. Implementations wrap an external model service and are
// injected so tests can fake them.
type Reranker interface {
	Score(ctx context.Context, query string, documents []string) ([]float64, error)
	Name() string
}

// SelectTopK picks the topK highest-scoring documents, ordered by descending
// score with ties broken by original retrieval order, and joins their texts
// with a blank line. It returns the joined context and the selected indices.
func SelectTopK(documents []string, scores []float64, topK int) (string, []int) {
	if len(documents) == 0 || len(scores) != len(documents) {
		return "", nil
	}
	if topK <= 0 {
		topK = 3
	}

	indices := make([]int, len(documents))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})

	if topK > len(indices) {
		topK = len(indices)
	}
	indices = indices[:topK]

	texts := make([]string, len(indices))
	for i, idx := range indices {
		texts[i] = documents[idx]
	}
	return strings.Join(texts, "\n\n"), indices
}
