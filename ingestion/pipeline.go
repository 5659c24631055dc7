package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/overlap/ai"
	"github.com/poiesic/overlap/core"
	"github.com/poiesic/overlap/lexical"
	"github.com/poiesic/overlap/similarity"
	"github.com/poiesic/overlap/storage"
)

// Pipeline produces the vector sets for a run.
// Strategies comparing dense vectors need a provider registered under the
// strategy name; sparse strategies need nothing.
type Pipeline struct {
	pool         *ants.Pool
	providers    map[string]ai.Provider
	cache        storage.VectorCache
	lexicalOpts  []lexical.Option
	chunkSize    int
	chunkOverlap int
	batchSize    int
	maxAttempts  int
	retryDelay   time.Duration
	progress     io.Writer
	logger       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the number of documents embedded concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if p.pool != nil {
			p.pool.Release()
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "pipeline")
		return nil
	}
}

// WithProvider registers the embedding provider for a semantic strategy.
func WithProvider(strategy string, provider ai.Provider) Option {
	return func(p *Pipeline) error {
		if provider == nil {
			return fmt.Errorf("%w: %s", ErrProviderRequired, strategy)
		}
		p.providers[strategy] = provider
		return nil
	}
}

// WithCache enables the vector cache. A nil cache disables it.
func WithCache(cache storage.VectorCache) Option {
	return func(p *Pipeline) error {
		p.cache = cache
		return nil
	}
}

// WithChunking sets the chunk size and overlap in characters.
func WithChunking(size, overlap int) Option {
	return func(p *Pipeline) error {
		if size < 1 || overlap < 0 || overlap >= size {
			return fmt.Errorf("%w: size %d, overlap %d", ErrInvalidChunking, size, overlap)
		}
		p.chunkSize, p.chunkOverlap = size, overlap
		return nil
	}
}

// WithBatchSize sets how many chunks go into one embedding request.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithRetry sets the attempts per embedding batch and the first backoff delay.
func WithRetry(maxAttempts int, delay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts, p.retryDelay = maxAttempts, delay
		return nil
	}
}

// WithProgress writes per-document embedding progress to w.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = w
		return nil
	}
}

// WithLexicalOptions passes options through to lexical.Fit.
func WithLexicalOptions(opts ...lexical.Option) Option {
	return func(p *Pipeline) error {
		p.lexicalOpts = append(p.lexicalOpts, opts...)
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(opts ...Option) (*Pipeline, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		pool:         pool,
		providers:    make(map[string]ai.Provider),
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		batchSize:    ai.DefaultBatchSize,
		maxAttempts:  DefaultMaxAttempts,
		retryDelay:   DefaultRetryDelay,
		logger:       slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	return p, nil
}

// Vectorize returns one vector set per strategy, keyed by strategy name.
// Strategies are processed in order; within a semantic strategy documents
// are embedded concurrently. Vector sets keep document order.
func (p *Pipeline) Vectorize(ctx context.Context, docs []*core.Document, strategies []similarity.Strategy) (map[string]*core.VectorSet, error) {
	if len(strategies) == 0 {
		return nil, ErrStrategyRequired
	}
	if err := core.ValidateDocuments(docs); err != nil {
		return nil, err
	}

	sets := make(map[string]*core.VectorSet, len(strategies))
	for _, strategy := range strategies {
		proc, err := p.processorFor(strategy, len(docs))
		if err != nil {
			return nil, err
		}

		start := time.Now()
		set, err := proc.vectorize(ctx, docs)
		if err != nil {
			return nil, fmt.Errorf("vectorize %s: %w", strategy.Name, err)
		}
		p.logger.Info("vectorized documents", "strategy", strategy.Name, "documents", set.Len(), "elapsed", time.Since(start))
		sets[strategy.Name] = set
	}
	return sets, nil
}

// processorFor routes on the vector kind the strategy compares.
func (p *Pipeline) processorFor(s similarity.Strategy, total int) (processor, error) {
	switch s.Input {
	case core.VectorSparse:
		return newLexicalProcessor(p.logger, p.lexicalOpts...), nil
	case core.VectorDense:
	default:
		return nil, fmt.Errorf("%w: %s expects %s", ErrUnsupportedInput, s.Name, s.Input)
	}

	strategy := s.Name
	provider, ok := p.providers[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderRequired, strategy)
	}
	chunker, err := NewChunker(p.chunkSize, p.chunkOverlap)
	if err != nil {
		return nil, err
	}

	var progress *ProgressTracker
	if p.progress != nil {
		progress = NewProgressTracker(p.progress, "Embedding "+strategy, total)
	}

	return &semanticProcessor{
		strategy:    strategy,
		provider:    provider,
		cache:       p.cache,
		chunker:     chunker,
		pool:        p.pool,
		batchSize:   p.batchSize,
		maxAttempts: p.maxAttempts,
		retryDelay:  p.retryDelay,
		progress:    progress,
		logger:      p.logger.With("processor", "semantic", "strategy", strategy),
	}, nil
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
// Providers and the cache are owned by the caller.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
