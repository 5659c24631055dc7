package fusion

import (
	"fmt"
	"slices"

	"github.com/poiesic/overlap/core"
	"github.com/poiesic/overlap/similarity"
)

// Blend is a validated set of strategies whose weights sum to 1.0.
type Blend struct {
	strategies []similarity.Strategy
}

// NewBlend validates strategies and their weights.
// Weight problems surface here as core.ErrWeightSum rather than at fusion time.
func NewBlend(strategies ...similarity.Strategy) (*Blend, error) {
	if len(strategies) == 0 {
		return nil, ErrNoScoreMaps
	}

	seen := make(map[string]struct{}, len(strategies))
	for _, s := range strategies {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStrategy, s.Name)
		}
		seen[s.Name] = struct{}{}
	}

	if err := ValidateWeights(similarity.Weights(strategies)); err != nil {
		return nil, err
	}
	return &Blend{strategies: slices.Clone(strategies)}, nil
}

// DefaultBlend is lexical 0.2, semantic-context 0.4 and semantic-paraphrase 0.4.
func DefaultBlend() *Blend {
	return &Blend{strategies: []similarity.Strategy{
		similarity.Lexical(0.2),
		similarity.Semantic(similarity.NameSemanticContext, 0.4),
		similarity.Semantic(similarity.NameSemanticParaphrase, 0.4),
	}}
}

// TwoStrategyBlend is lexical 0.2 and a single semantic strategy at 0.8.
func TwoStrategyBlend() *Blend {
	return &Blend{strategies: []similarity.Strategy{
		similarity.Lexical(0.2),
		similarity.Semantic(similarity.NameSemantic, 0.8),
	}}
}

// Strategies returns the blended strategies in declaration order.
func (b *Blend) Strategies() []similarity.Strategy {
	return slices.Clone(b.strategies)
}

// Weight returns the weight declared for the named strategy.
func (b *Blend) Weight(name string) (float64, bool) {
	for _, s := range b.strategies {
		if s.Name == name {
			return s.Weight, true
		}
	}
	return 0, false
}

// Fuse matches maps to the blend's strategies by name and fuses them.
// Every blended strategy needs exactly one map; extra maps are ignored.
func (b *Blend) Fuse(maps []*core.ScoreMap) (*core.CompositeScoreMap, error) {
	byName := make(map[string]*core.ScoreMap, len(maps))
	for _, m := range maps {
		if m == nil {
			continue
		}
		if _, dup := byName[m.Strategy()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStrategy, m.Strategy())
		}
		byName[m.Strategy()] = m
	}

	ordered := make([]*core.ScoreMap, len(b.strategies))
	for i, s := range b.strategies {
		m, ok := byName[s.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrStrategyMissing, s.Name)
		}
		ordered[i] = m
	}
	return Fuse(ordered, similarity.Weights(b.strategies))
}
