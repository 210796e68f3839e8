// Package llm streams answers from a language-model service.
package llm

import (
	"context"
	"fmt"
)

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest contains the parameters for a streamed completion.
type CompletionRequest struct {
	Model    string
	Messages []Message
}

// Provider streams completions from an LLM service. The returned channel
// delivers response fragments as they arrive and is closed when the response
// completes, fails mid-stream, or the context is cancelled. An error is
// returned only when the request cannot be started.
type Provider interface {
	Stream(ctx context.Context, req CompletionRequest) (<-chan string, error)
	Name() string
}

// NewProvider creates a Provider from a provider name and model.
func NewProvider(provider, model, ollamaURL, apiKey string) (Provider, error) {
	switch provider {
	case "ollama":
		return NewOllamaProvider(ollamaURL, model), nil
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for the openai provider")
		}
		return NewOpenAIProvider(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q: must be ollama or openai", provider)
	}
}
