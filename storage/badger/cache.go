package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/overlap/core"
	"github.com/poiesic/overlap/storage"
)

// VectorCache implements storage.VectorCache for BadgerDB.
type VectorCache struct {
	backend *Backend
	owned   bool
	logger  *slog.Logger
}

var _ storage.VectorCache = (*VectorCache)(nil)

// NewVectorCache opens a persistent cache in dir.
func NewVectorCache(dir string) (storage.VectorCache, error) {
	backend, err := OpenBackend(dir, false)
	if err != nil {
		return nil, err
	}
	return newVectorCache(backend, true), nil
}

// NewVectorCacheWithBackend creates a cache on an existing backend.
// Closing the cache leaves the backend open.
func NewVectorCacheWithBackend(backend *Backend) *VectorCache {
	return newVectorCache(backend, false)
}

func newVectorCache(backend *Backend, owned bool) *VectorCache {
	return &VectorCache{
		backend: backend,
		owned:   owned,
		logger:  slog.Default().With("component", "vector-cache"),
	}
}

// Get returns the cached vector, or storage.ErrNotFound.
func (c *VectorCache) Get(ctx context.Context, model string, digest core.Digest) ([]float64, error) {
	if err := c.check(ctx, model, digest); err != nil {
		return nil, err
	}

	var vector []float64
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorKey(model, digest))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			vector, err = storage.UnmarshalVector(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return vector, nil
}

// Put stores vector under (model, digest).
func (c *VectorCache) Put(ctx context.Context, model string, digest core.Digest, vector []float64) error {
	if err := c.check(ctx, model, digest); err != nil {
		return err
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeVectorKey(model, digest), storage.MarshalVector(vector)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Purge deletes every cached vector.
func (c *VectorCache) Purge(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if c.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(vectorPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}

	if err := c.backend.DropPrefix([]byte(vectorPrefix + ":")); err != nil {
		return 0, fmt.Errorf("purge vectors: %w", err)
	}
	c.logger.Info("purged vector cache", "vectors", count)
	return count, nil
}

// PurgeModel deletes the cached vectors of one model under every chunking.
func (c *VectorCache) PurgeModel(ctx context.Context, model string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if model == "" {
		return storage.ErrInvalidKey
	}
	return c.backend.DropPrefix(makeModelPrefixes(model)...)
}

// Close closes the backend if the cache opened it.
func (c *VectorCache) Close() error {
	if !c.owned || c.backend.IsClosed() {
		return nil
	}
	return c.backend.Close()
}

func (c *VectorCache) check(ctx context.Context, model string, digest core.Digest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if model == "" || digest.IsZero() {
		return storage.ErrInvalidKey
	}
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}
