package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/overlap/ai"
	"github.com/poiesic/overlap/core"
	"github.com/poiesic/overlap/storage"
	"github.com/tmc/langchaingo/embeddings"
)

// semanticProcessor embeds each document through one provider.
type semanticProcessor struct {
	strategy    string
	provider    ai.Provider
	cache       storage.VectorCache // optional
	chunker     *Chunker
	pool        *ants.Pool
	batchSize   int
	maxAttempts int
	retryDelay  time.Duration
	progress    *ProgressTracker // optional
	logger      *slog.Logger
}

var _ processor = (*semanticProcessor)(nil)

func (sp *semanticProcessor) vectorize(ctx context.Context, docs []*core.Document) (*core.VectorSet, error) {
	sp.logger.Info("embedding documents", "documents", len(docs), "model", sp.provider.Model())

	if sp.progress != nil {
		sp.progress.Start()
		defer sp.progress.Finish()
	}

	vectors := make([]*core.Dense, len(docs))
	var wg sync.WaitGroup
	var submitErr error

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			submitErr = err
			break
		}
		wg.Add(1)
		err := sp.pool.Submit(func() {
			defer wg.Done()
			vectors[i] = sp.embedOrEmpty(ctx, doc)
		})
		if err != nil {
			wg.Done()
			submitErr = err
			break
		}
	}
	wg.Wait()

	if submitErr != nil {
		return nil, submitErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := core.NewVectorSet()
	for i, doc := range docs {
		if err := set.Add(doc.Identity, vectors[i]); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// embedOrEmpty returns the document vector, or an empty one if embedding
// failed. The failure then shows up on every pair that involves the document.
func (sp *semanticProcessor) embedOrEmpty(ctx context.Context, doc *core.Document) *core.Dense {
	vector, err := sp.embedDocument(ctx, doc)
	if sp.progress != nil {
		sp.progress.Done(err == nil)
	}
	if err != nil {
		if ctx.Err() == nil {
			sp.logger.Warn("could not embed document", "identity", doc.Identity, "path", doc.Path, "err", err)
		}
		return &core.Dense{}
	}
	return core.NewDense(vector)
}

func (sp *semanticProcessor) embedDocument(ctx context.Context, doc *core.Document) ([]float64, error) {
	namespace := cacheNamespace(sp.provider.Model(), sp.chunker)

	if sp.cache != nil {
		cached, err := sp.cache.Get(ctx, namespace, doc.Digest)
		if err == nil {
			sp.logger.Debug("vector cache hit", "identity", doc.Identity)
			return cached, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			sp.logger.Warn("vector cache read failed", "identity", doc.Identity, "err", err)
		}
	}

	chunks, err := sp.chunker.Split(doc.Text)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}

	chunkVectors := make([][]float32, 0, len(chunks))
	for _, batch := range embeddings.BatchTexts(chunks, sp.batchSize) {
		var batchVectors [][]float32
		err := RetryWithBackoff(ctx, sp.maxAttempts, sp.retryDelay, func(ctx context.Context) error {
			var err error
			batchVectors, err = sp.provider.Embedder().EmbedTexts(ctx, batch)
			if err != nil {
				return err
			}
			if len(batchVectors) != len(batch) {
				return fmt.Errorf("%w: expected %d, received %d", ErrEmbeddingMismatch, len(batch), len(batchVectors))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		chunkVectors = append(chunkVectors, batchVectors...)
	}

	pooled, err := MeanPool(chunkVectors)
	if err != nil {
		return nil, err
	}
	vector := core.NewDenseFromFloat32(pooled).Data
	sp.logger.Debug("embedded document", "identity", doc.Identity, "chunks", len(chunks), "dimension", len(vector))

	if sp.cache != nil && len(vector) > 0 {
		if err := sp.cache.Put(ctx, namespace, doc.Digest, vector); err != nil {
			sp.logger.Warn("vector cache write failed", "identity", doc.Identity, "err", err)
		}
	}
	return vector, nil
}

// cacheNamespace scopes cached vectors to the model and the chunking that
// produced them: "model@size/overlap".
func cacheNamespace(model string, chunker *Chunker) string {
	return model + "@" + chunker.Fingerprint()
}
