package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPReranker calls a cross-encoder model served over HTTP (a TEI/Jina
// style /rerank endpoint).
type HTTPReranker struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewHTTPReranker creates a reranker client for the given endpoint and model
// (e.g. "cross-encoder/ms-marco-MiniLM-L-6-v2").
func NewHTTPReranker(baseURL, model string) *HTTPReranker {
	return &HTTPReranker{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{},
	}
}

func (r *HTTPReranker) Name() string {
	return "http/" + r.model
}

type rerankRequest struct {
	Model     string   `json:"model,omitempty"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
}

type rerankResult struct {
	Index          int     `json:"index"`
	RelevanceScore float64 `json:"relevance_score"`
}

type rerankResponse struct {
	Results []rerankResult `json:"results"`
}

// Score sends all (query, document) pairs in one request and returns scores
// aligned with the input document order.
func (r *HTTPReranker) Score(ctx context.Context, query string, documents []string) ([]float64, error) {
	if len(documents) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(rerankRequest{Model: r.model, Query: query, Documents: documents})
	if err != nil {
		return nil, fmt.Errorf("marshal rerank request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/rerank", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create rerank request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rerank request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("reranker returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode rerank response: %w", err)
	}

	scores := make([]float64, len(documents))
	for _, res := range result.Results {
		if res.Index < 0 || res.Index >= len(scores) {
			return nil, fmt.Errorf("reranker returned out-of-range index %d", res.Index)
		}
		scores[res.Index] = res.RelevanceScore
	}
	return scores, nil
}
