package overlap

import (
	"github.com/poiesic/overlap/ai/openai"
	"github.com/poiesic/overlap/config"
	"github.com/poiesic/overlap/ingestion"
	"github.com/poiesic/overlap/similarity"
	"github.com/poiesic/overlap/storage/badger"
)

// Open builds an Analyzer from validated settings. It opens the vector cache
// when CacheDir is set and one OpenAI-compatible provider per semantic
// strategy. Close releases all of them.
func Open(settings *config.Settings, opts ...Option) (*Analyzer, error) {
	if settings == nil {
		return nil, ErrSettingsRequired
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	blend, err := settings.Blend()
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithTopK(settings.TopK),
		WithThreshold(settings.Threshold),
		WithScorerOptions(similarity.WithPoolSize(settings.PoolSize)),
	}
	a, err := newAnalyzer(blend, append(base, opts...))
	if err != nil {
		return nil, err
	}

	pipeOpts := []ingestion.Option{
		ingestion.WithLogger(a.base),
		ingestion.WithPoolSize(settings.PoolSize),
		ingestion.WithChunking(settings.ChunkSize, settings.ChunkOverlap),
		ingestion.WithBatchSize(settings.BatchSize),
		ingestion.WithRetry(settings.RetryAttempts, settings.RetryDelay()),
	}

	if settings.CacheDir != "" {
		cache, err := badger.NewVectorCache(settings.CacheDir)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, cache)
		pipeOpts = append(pipeOpts, ingestion.WithCache(cache))
	}

	for _, st := range settings.Strategies {
		if st.Kind != config.KindSemantic {
			continue
		}
		provider, err := openai.NewProvider(settings.AIConfig(st))
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, provider)
		pipeOpts = append(pipeOpts, ingestion.WithProvider(st.Name, provider))
	}

	pipeline, err := ingestion.NewPipeline(append(pipeOpts, a.pipelineOpts...)...)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.pipeline = pipeline
	a.ownsPipeline = true

	a.logger.Debug("analyzer opened",
		"strategies", len(settings.Strategies),
		"cache", settings.CacheDir != "")
	return a, nil
}
