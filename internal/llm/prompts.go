package llm

import (
	"context"
	"fmt"
	"strings"
)

// DefaultMaxContextChars is the character budget for retrieved context sent
// to the model.
const DefaultMaxContextChars = 12000

// TruncationNotice is appended to context that was cut to fit the budget.
const TruncationNotice = "\n\n[Context truncated due to length.]"

const systemPrompt = `You are an AI research assistant specializing in scientific and technical analysis.
Your task is to generate well-structured, methodical, and precise responses based solely on the given context.
Only use information present in the context - do not make assumptions or use external knowledge.

Respond in a clear, scientific style using:
1. Paragraphs or bullet points for structure.
2. Proper grammar and concise explanations.
3. Headings or subheadings if needed.`

// TruncateContext cuts the context to at most maxChars characters, appending
// TruncationNotice when anything was removed. maxChars <= 0 falls back to
// DefaultMaxContextChars.
func TruncateContext(docContext string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxContextChars
	}
	docContext = strings.TrimSpace(docContext)
	if len(docContext) <= maxChars {
		return docContext
	}
	return docContext[:maxChars] + TruncationNotice
}

func buildUserPrompt(docContext, prompt string) string {
	return fmt.Sprintf(`Answer the following question using ONLY the provided context.

Context:
"""
%s
"""

Question: %s
`, docContext, prompt)
}

// Generate streams an answer to prompt constrained to the supplied context.
// The returned channel always completes normally: if the provider cannot be
// reached the stream carries a single fragment with a human-readable error
// message, so callers consume it without any error handling.
func Generate(ctx context.Context, p Provider, docContext, prompt string, maxContextChars int) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)

		req := CompletionRequest{
			Messages: []Message{
				{Role: RoleSystem, Content: systemPrompt},
				{Role: RoleUser, Content: buildUserPrompt(TruncateContext(docContext, maxContextChars), strings.TrimSpace(prompt))},
			},
		}

		stream, err := p.Stream(ctx, req)
		if err != nil {
			select {
			case out <- fmt.Sprintf("LLM error: %v", err):
			case <-ctx.Done():
			}
			return
		}

		for fragment := range stream {
			select {
			case out <- fragment:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
