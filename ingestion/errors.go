package ingestion

import "errors"

var (
	// ErrProviderRequired is returned when a semantic strategy has no provider.
	ErrProviderRequired = errors.New("AI provider required")

	// ErrStrategyRequired is returned when Vectorize is called without strategies.
	ErrStrategyRequired = errors.New("at least one strategy required")

	// ErrDirectoryRequired is returned when LoadDirectory is given an empty path.
	ErrDirectoryRequired = errors.New("directory required")

	// ErrUnsupportedFormat is returned for files that are not PDF, text or markdown.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrInvalidChunking is returned for a non-positive chunk size or an
	// overlap that is not smaller than the chunk size.
	ErrInvalidChunking = errors.New("invalid chunk size or overlap")

	// ErrEmbeddingMismatch is returned when a model answers with the wrong
	// number of vectors.
	ErrEmbeddingMismatch = errors.New("embedding result mismatch")

	// ErrUnsupportedInput is returned for a strategy whose input vector kind
	// no processor produces.
	ErrUnsupportedInput = errors.New("unsupported strategy input")

	// ErrNoChunks is returned when a document yields no text to embed.
	ErrNoChunks = errors.New("document produced no chunks")
)
