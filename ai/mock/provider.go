package mock

import "github.com/poiesic/overlap/ai"

// MockProvider is a test double for ai.Provider.
type MockProvider struct {
	model    string
	embedder *MockEmbedder
	closed   bool
}

// NewMockProvider creates a mock provider for model with a default MockEmbedder.
func NewMockProvider(model string) *MockProvider {
	return NewMockProviderWithEmbedder(model, NewMockEmbedder())
}

// NewMockProviderWithEmbedder creates a mock provider backed by embedder.
func NewMockProviderWithEmbedder(model string, embedder *MockEmbedder) *MockProvider {
	return &MockProvider{model: model, embedder: embedder}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Model returns the model name given at construction.
func (p *MockProvider) Model() string {
	return p.model
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

var _ ai.Provider = (*MockProvider)(nil)
