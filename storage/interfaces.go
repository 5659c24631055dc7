package storage

import (
	"context"

	"github.com/poiesic/overlap/core"
)

// VectorCache stores document vectors keyed by embedding model and content digest.
// Implementations must be thread-safe and support concurrent access.
type VectorCache interface {
	// Get returns the cached vector for digest under model.
	// Returns ErrNotFound if nothing is cached.
	Get(ctx context.Context, model string, digest core.Digest) ([]float64, error)

	// Put stores vector for digest under model, replacing any previous value.
	Put(ctx context.Context, model string, digest core.Digest, vector []float64) error

	// Purge removes every cached vector and returns how many were removed.
	Purge(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
