package similarity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/overlap/core"
)

// Scorer runs pairwise scoring passes, one per strategy, on a worker pool.
type Scorer struct {
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer) error

// WithPoolSize sets how many strategies may be scored at once.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Scorer) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if s.pool != nil {
			s.pool.Release()
		}
		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "similarity")
		return nil
	}
}

// NewScorer creates a Scorer.
func NewScorer(opts ...Option) (*Scorer, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Scorer{
		pool:   pool,
		logger: slog.Default().With("component", "similarity"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}
	return s, nil
}

// Release frees the worker pool. The Scorer must not be used afterwards.
func (s *Scorer) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// ScorePairs scores every unordered pair of distinct identities in vectors
// exactly once using strategy. See the package ScorePairs.
func (s *Scorer) ScorePairs(vectors *core.VectorSet, strategy Strategy) *core.ScoreMap {
	return scorePairs(vectors, strategy, s.logger)
}

// ScoreAll runs one ScorePairs pass per strategy concurrently. sets is keyed
// by strategy name. The returned maps are in strategy order.
// Every strategy must have a vector set; per-pair failures are absorbed as usual.
func (s *Scorer) ScoreAll(ctx context.Context, sets map[string]*core.VectorSet, strategies []Strategy) ([]*core.ScoreMap, error) {
	for _, strategy := range strategies {
		if _, ok := sets[strategy.Name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrVectorSetMissing, strategy.Name)
		}
	}

	results := make([]*core.ScoreMap, len(strategies))
	var wg sync.WaitGroup
	var submitErr error

	for i, strategy := range strategies {
		if err := ctx.Err(); err != nil {
			submitErr = err
			break
		}
		vectors := sets[strategy.Name]
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			results[i] = scorePairs(vectors, strategy, s.logger)
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
	return results, nil
}

// ScorePairs scores every unordered pair of distinct identities in vectors
// exactly once using strategy.
//
// Pairs are enumerated over ordered (i, j) in insertion order, skipping a
// pair whose canonical key is already present. Scores are rounded to two
// decimals. A comparison that fails, panics, or yields a value outside
// [-1, 1] is stored as a failure and never aborts the pass. Fewer than two
// identities produce an empty map.
func ScorePairs(vectors *core.VectorSet, strategy Strategy) *core.ScoreMap {
	return scorePairs(vectors, strategy, slog.Default().With("component", "similarity"))
}

func scorePairs(vectors *core.VectorSet, strategy Strategy, logger *slog.Logger) *core.ScoreMap {
	scores := core.NewScoreMap(strategy.Name)
	if vectors.Len() < 2 {
		return scores
	}

	ids := vectors.Identities()
	for i, a := range ids {
		for j, b := range ids {
			if i == j {
				continue
			}
			key := core.NewPairKey(a, b)
			if scores.Has(key) {
				continue
			}

			va, _ := vectors.Get(a)
			vb, _ := vectors.Get(b)
			score, err := compare(strategy.Compare, va, vb)
			if err != nil {
				logger.Warn("pair could not be scored", "strategy", strategy.Name, "pair", key.String(), "err", err)
				scores.Add(core.Failure(key, err))
				continue
			}
			scores.Add(core.Success(key, score))
		}
	}

	logger.Debug("scored pairs", "strategy", strategy.Name, "pairs", scores.Len(), "failures", scores.Failures())
	return scores
}

// compare runs fn and converts every failure mode into an error wrapping
// core.ErrVectorShape or core.ErrComparison.
func compare(fn CompareFunc, a, b core.Vector) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			score, err = 0, fmt.Errorf("%w: panic: %v", core.ErrComparison, r)
		}
	}()

	raw, err := fn(a, b)
	if err != nil {
		if errors.Is(err, core.ErrVectorShape) || errors.Is(err, core.ErrComparison) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", core.ErrComparison, err)
	}
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, fmt.Errorf("%w: non-finite score %v", core.ErrComparison, raw)
	}

	rounded := core.Round2(raw)
	if rounded < -1 || rounded > 1 {
		return 0, fmt.Errorf("%w: score %v outside [-1, 1]", core.ErrComparison, rounded)
	}
	return rounded, nil
}
