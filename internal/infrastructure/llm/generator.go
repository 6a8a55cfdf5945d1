package llm

import "context"

// Generator produces one chat completion from a system prompt and a user
// message. Implementations wrap a specific text-generation provider.
type Generator interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
	Model() string
}
