package rag

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/yma-ai/yma/internal/llm"
	"github.com/yma-ai/yma/internal/rerank"
	"github.com/yma-ai/yma/internal/vectordb"
)

// Answerer retrieves chunks for a prompt, reranks them and streams a grounded
// answer from the language model.
type Answerer struct {
	store    vectordb.Store
	reranker rerank.Reranker
	provider llm.Provider

	nResults        int
	topK            int
	maxContextChars int
}

// AnswererOptions carries the retrieval tuning knobs. Zero values fall back
// to the defaults used throughout the pipeline.
type AnswererOptions struct {
	NResults        int
	TopK            int
	MaxContextChars int
}

// Answer is the outcome of one Ask call. When NoResults is set the stream is
// nil and nothing was sent to the model.
type Answer struct {
	Stream    <-chan string
	Sources   []string
	NoResults bool
}

// NewAnswerer creates an answerer. reranker may be nil, in which case the
// vector-distance order decides which chunks reach the model.
func NewAnswerer(store vectordb.Store, reranker rerank.Reranker, provider llm.Provider, opts AnswererOptions) *Answerer {
	if opts.NResults <= 0 {
		opts.NResults = 10
	}
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	return &Answerer{
		store:           store,
		reranker:        reranker,
		provider:        provider,
		nResults:        opts.NResults,
		topK:            opts.TopK,
		maxContextChars: opts.MaxContextChars,
	}
}

// RetrieveAndRerank retrieves the nearest chunks for the prompt, reranks
// them and joins the top selection with blank lines. It returns the joined
// context and the selected results, best first. An empty or whitespace-only
// prompt, or an empty candidate set, yields ("", nil) without touching the
// reranker, so the caller can short-circuit before generation.
func (a *Answerer) RetrieveAndRerank(ctx context.Context, prompt string) (string, []vectordb.QueryResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", nil, nil
	}

	results, err := a.store.Query(ctx, prompt, a.nResults)
	if err != nil {
		return "", nil, fmt.Errorf("retrieving chunks: %w", err)
	}
	if len(results) == 0 {
		return "", nil, nil
	}

	documents := make([]string, len(results))
	for i, r := range results {
		documents[i] = r.Text
	}

	indices := a.selectContext(ctx, prompt, documents)
	selected := make([]vectordb.QueryResult, len(indices))
	for i, idx := range indices {
		selected[i] = results[idx]
	}
	return joinDocuments(documents, indices), selected, nil
}

// Ask answers a question about the indexed documents. An empty prompt is an
// error; a prompt that retrieves nothing returns NoResults without calling
// the model. A rerank failure falls back to vector order with a logged
// warning rather than failing the question.
func (a *Answerer) Ask(ctx context.Context, prompt string) (Answer, error) {
	if strings.TrimSpace(prompt) == "" {
		return Answer{}, fmt.Errorf("empty prompt")
	}

	docContext, selected, err := a.RetrieveAndRerank(ctx, prompt)
	if err != nil {
		return Answer{}, err
	}
	if docContext == "" {
		return Answer{NoResults: true}, nil
	}

	seen := make(map[string]bool)
	var sources []string
	for _, r := range selected {
		if r.SourceFile == "" || seen[r.SourceFile] {
			continue
		}
		seen[r.SourceFile] = true
		sources = append(sources, r.SourceFile)
	}

	return Answer{
		Stream:  llm.Generate(ctx, a.provider, docContext, strings.TrimSpace(prompt), a.maxContextChars),
		Sources: sources,
	}, nil
}

// selectContext returns the indices of the documents that reach the model,
// best first. Without a reranker the first topK retrieval results are used.
func (a *Answerer) selectContext(ctx context.Context, prompt string, documents []string) []int {
	if a.reranker != nil {
		scores, err := a.reranker.Score(ctx, prompt, documents)
		if err != nil {
			log.Printf("RAG: rerank via %s failed, falling back to vector order: %v", a.reranker.Name(), err)
		} else {
			_, indices := rerank.SelectTopK(documents, scores, a.topK)
			return indices
		}
	}

	k := a.topK
	if k > len(documents) {
		k = len(documents)
	}
	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}
	return indices
}

func joinDocuments(documents []string, indices []int) string {
	texts := make([]string, len(indices))
	for i, idx := range indices {
		texts[i] = documents[idx]
	}
	return strings.Join(texts, "\n\n")
}
