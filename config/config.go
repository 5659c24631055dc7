// Package config loads the deployment settings of an overlap run.
//
// Settings are layered, lowest precedence first:
//  1. built-in defaults (New)
//  2. a YAML file, from the path given to Load or OVERLAP_CONFIG
//  3. environment variables prefixed OVERLAP_, e.g. OVERLAP_TOP_K
//
// Command-line flags are applied on top by the CLI.
package config

import (
	"runtime"

	"github.com/poiesic/overlap/ai"
	"github.com/poiesic/overlap/ingestion"
	"github.com/poiesic/overlap/ranking"
	"github.com/poiesic/overlap/similarity"
)

// Strategy kinds.
const (
	KindLexical  = "lexical"
	KindSemantic = "semantic"
)

// StrategySettings declares one scoring strategy.
type StrategySettings struct {
	// Name identifies the strategy in score maps and reports.
	Name string `koanf:"name"`

	// Kind is "lexical" or "semantic".
	Kind string `koanf:"kind"`

	// Model is the embedding model of a semantic strategy.
	Model string `koanf:"model"`

	// Weight is the strategy's share of the composite score.
	Weight float64 `koanf:"weight"`
}

// Settings contains the configuration of a run.
type Settings struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Strategies are fused in declaration order. Weights must sum to 1.
	Strategies []StrategySettings `koanf:"strategies"`

	// Threshold is the composite score at which a pair is flagged.
	Threshold float64 `koanf:"threshold"`

	// TopK is how many pairs the report lists.
	TopK int `koanf:"top_k"`

	ChunkSize    int `koanf:"chunk_size"`
	ChunkOverlap int `koanf:"chunk_overlap"`

	// EmbeddingHost is the OpenAI-compatible server all semantic strategies use.
	EmbeddingHost  string `koanf:"embedding_host"`
	EmbeddingToken string `koanf:"embedding_token"`
	BatchSize      int    `koanf:"batch_size"`

	// CacheDir holds the vector cache. Empty disables caching.
	CacheDir string `koanf:"cache_dir"`

	// PoolSize sets how many documents are embedded concurrently.
	PoolSize int `koanf:"pool_size"`

	RetryAttempts int `koanf:"retry_attempts"`
	RetryDelayMS  int `koanf:"retry_delay_ms"`

	// Format selects the report renderer: text, json or pdf.
	Format string `koanf:"format"`
}

// DefaultStrategies is lexical 0.2 plus the context and paraphrase models at 0.4 each.
func DefaultStrategies() []StrategySettings {
	return []StrategySettings{
		{Name: similarity.NameLexical, Kind: KindLexical, Weight: 0.2},
		{Name: similarity.NameSemanticContext, Kind: KindSemantic, Model: ai.DefaultContextModel, Weight: 0.4},
		{Name: similarity.NameSemanticParaphrase, Kind: KindSemantic, Model: ai.DefaultParaphraseModel, Weight: 0.4},
	}
}

// New returns the default settings.
func New() *Settings {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	return &Settings{
		LogLevel:      "info",
		Strategies:    DefaultStrategies(),
		Threshold:     ranking.DefaultThreshold,
		TopK:          ranking.DefaultTopK,
		ChunkSize:     ingestion.DefaultChunkSize,
		ChunkOverlap:  ingestion.DefaultChunkOverlap,
		EmbeddingHost: ai.DefaultHost,
		BatchSize:     ai.DefaultBatchSize,
		PoolSize:      poolSize,
		RetryAttempts: ingestion.DefaultMaxAttempts,
		RetryDelayMS:  int(ingestion.DefaultRetryDelay.Milliseconds()),
		Format:        "text",
	}
}
