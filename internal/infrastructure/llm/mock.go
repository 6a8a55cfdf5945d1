package llm

import "context"

// MockGenerator is a scriptable Generator for tests and local development
type MockGenerator struct {
	// CompleteFunc handles each call; when nil, Reply is returned
	CompleteFunc func(ctx context.Context, systemPrompt, userMessage string) (string, error)
	Reply        string
	Calls        int
}

// Complete returns the scripted reply
func (m *MockGenerator) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	m.Calls++
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userMessage)
	}
	return m.Reply, nil
}

// Model returns a fixed model name
func (m *MockGenerator) Model() string {
	return "mock"
}

// Compile-time interface check
var _ Generator = (*MockGenerator)(nil)
