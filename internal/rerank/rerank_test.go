package rerank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSelectTopKOrdersByScore(t *testing.T) {
	docs := []string{"low", "high", "middle"}
	scores := []float64{0.1, 0.9, 0.5}

	joined, indices := SelectTopK(docs, scores, 2)

	if len(indices) != 2 || indices[0] != 1 || indices[1] != 2 {
		t.Fatalf("indices: got %v, want [1 2]", indices)
	}
	if joined != "high\n\nmiddle" {
		t.Errorf("context: got %q", joined)
	}
}

func TestSelectTopKTiesKeepRetrievalOrder(t *testing.T) {
	docs := []string{"first", "second", "third"}
	scores := []float64{0.5, 0.5, 0.5}

	_, indices := SelectTopK(docs, scores, 3)
	for i, idx := range indices {
		if idx != i {
			t.Errorf("tie broken out of retrieval order: got %v", indices)
			break
		}
	}
}

func TestSelectTopKEmptyInput(t *testing.T) {
	if ctx, indices := SelectTopK(nil, nil, 3); ctx != "" || indices != nil {
		t.Errorf("got (%q, %v), want empty results", ctx, indices)
	}
}

func TestSelectTopKFewerDocsThanK(t *testing.T) {
	docs := []string{"only one document"}
	ctx, indices := SelectTopK(docs, []float64{0.7}, 3)
	if len(indices) != 1 || ctx != "only one document" {
		t.Errorf("got (%q, %v)", ctx, indices)
	}
}

func TestHTTPRerankerScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rerankRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Query != "what is the conclusion" {
			t.Errorf("query: got %q", req.Query)
		}

		// Score documents by whether they mention "conclusion".
		resp := rerankResponse{}
		for i, doc := range req.Documents {
			score := 0.1
			if strings.Contains(doc, "conclusion") {
				score = 0.95
			}
			resp.Results = append(resp.Results, rerankResult{Index: i, RelevanceScore: score})
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	r := NewHTTPReranker(server.URL, "test-model")
	scores, err := r.Score(context.Background(), "what is the conclusion", []string{
		"the methodology section",
		"in conclusion, the approach works",
	})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("got %d scores, want 2", len(scores))
	}
	if scores[1] <= scores[0] {
		t.Errorf("expected second document to outscore first: %v", scores)
	}
}

func TestHTTPRerankerServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	r := NewHTTPReranker(server.URL, "test-model")
	if _, err := r.Score(context.Background(), "q", []string{"doc"}); err == nil {
		t.Fatal("expected error from failing reranker")
	}
}
