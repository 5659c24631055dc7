package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/overlap/ai"
	"github.com/poiesic/overlap/fusion"
	"github.com/poiesic/overlap/report"
	"github.com/poiesic/overlap/similarity"
)

// Validate checks the settings. A weight sum other than 1 is reported as
// core.ErrWeightSum; everything else as ErrInvalidConfig.
func (s *Settings) Validate() error {
	if _, err := ParseLogLevel(s.LogLevel); err != nil {
		return err
	}
	if len(s.Strategies) == 0 {
		return fmt.Errorf("%w: no strategies", ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(s.Strategies))
	for i, st := range s.Strategies {
		if st.Name == "" {
			return fmt.Errorf("%w: strategy %d has no name", ErrInvalidConfig, i)
		}
		if _, dup := seen[st.Name]; dup {
			return fmt.Errorf("%w: strategy %s declared twice", ErrInvalidConfig, st.Name)
		}
		seen[st.Name] = struct{}{}

		switch st.Kind {
		case KindLexical:
			if st.Name != similarity.NameLexical {
				return fmt.Errorf("%w: lexical strategy must be named %q", ErrInvalidConfig, similarity.NameLexical)
			}
		case KindSemantic:
			if st.Name == similarity.NameLexical {
				return fmt.Errorf("%w: name %q is reserved for the lexical strategy", ErrInvalidConfig, similarity.NameLexical)
			}
			if st.Model == "" {
				return fmt.Errorf("%w: semantic strategy %s has no model", ErrInvalidConfig, st.Name)
			}
		default:
			return fmt.Errorf("%w: strategy %s has unknown kind %q", ErrInvalidConfig, st.Name, st.Kind)
		}
	}

	weights := make([]float64, len(s.Strategies))
	for i, st := range s.Strategies {
		weights[i] = st.Weight
	}
	if err := fusion.ValidateWeights(weights); err != nil {
		return err
	}

	if s.Threshold < 0 || s.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v outside [0, 1]", ErrInvalidConfig, s.Threshold)
	}
	if s.TopK < 0 {
		return fmt.Errorf("%w: top_k %d is negative", ErrInvalidConfig, s.TopK)
	}
	if s.ChunkSize < 1 || s.ChunkOverlap < 0 || s.ChunkOverlap >= s.ChunkSize {
		return fmt.Errorf("%w: chunk size %d with overlap %d", ErrInvalidConfig, s.ChunkSize, s.ChunkOverlap)
	}
	if s.HasSemantic() && s.EmbeddingHost == "" {
		return fmt.Errorf("%w: embedding_host is required for semantic strategies", ErrInvalidConfig)
	}
	if s.BatchSize < 1 || s.PoolSize < 1 || s.RetryAttempts < 1 || s.RetryDelayMS < 0 {
		return fmt.Errorf("%w: batch_size, pool_size and retry_attempts must be positive", ErrInvalidConfig)
	}
	if _, err := report.ParseFormat(s.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// HasSemantic reports whether any strategy needs an embedding model.
func (s *Settings) HasSemantic() bool {
	for _, st := range s.Strategies {
		if st.Kind == KindSemantic {
			return true
		}
	}
	return false
}

// Blend builds the strategy descriptors and validates their weights.
func (s *Settings) Blend() (*fusion.Blend, error) {
	strategies := make([]similarity.Strategy, len(s.Strategies))
	for i, st := range s.Strategies {
		if st.Kind == KindLexical {
			strategies[i] = similarity.Lexical(st.Weight)
		} else {
			strategies[i] = similarity.Semantic(st.Name, st.Weight)
		}
	}
	return fusion.NewBlend(strategies...)
}

// AIConfig returns the provider configuration of a semantic strategy.
func (s *Settings) AIConfig(st StrategySettings) *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(s.EmbeddingHost),
		ai.WithEmbeddingModel(st.Model),
		ai.WithToken(s.EmbeddingToken),
		ai.WithBatchSize(s.BatchSize),
	)
}

// RetryDelay returns RetryDelayMS as a duration.
func (s *Settings) RetryDelay() time.Duration {
	return time.Duration(s.RetryDelayMS) * time.Millisecond
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, level)
}
