package fusion

import (
	"fmt"
	"math"

	"github.com/poiesic/overlap/core"
)

// Tolerance is how far a weight sum may drift from 1.0.
const Tolerance = 1e-6

// ValidateWeights checks that each weight lies in [0, 1] and that together
// they sum to 1.0 within Tolerance.
func ValidateWeights(weights []float64) error {
	var sum float64
	for i, w := range weights {
		if math.IsNaN(w) || w < 0 || w > 1 {
			return fmt.Errorf("%w: weight %d is %v", core.ErrWeightSum, i, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > Tolerance {
		return fmt.Errorf("%w: got %v", core.ErrWeightSum, sum)
	}
	return nil
}

// Fuse computes Σ weights[i] * maps[i][key] for every pair.
//
// Each map is read by PairKey. All maps must hold the same key set,
// otherwise core.ErrKeySetMismatch is returned and nothing is fused. Failed
// pairs contribute the sentinel score and mark the composite entry Degraded.
// The result keeps the first map's order and is not re-rounded.
func Fuse(maps []*core.ScoreMap, weights []float64) (*core.CompositeScoreMap, error) {
	if len(maps) == 0 {
		return nil, ErrNoScoreMaps
	}
	if len(maps) != len(weights) {
		return nil, fmt.Errorf("%w: %d maps, %d weights", core.ErrWeightCount, len(maps), len(weights))
	}
	if err := ValidateWeights(weights); err != nil {
		return nil, err
	}
	if err := checkKeySets(maps); err != nil {
		return nil, err
	}

	composite := core.NewCompositeScoreMap()
	for _, key := range maps[0].Keys() {
		var (
			sum      float64
			degraded bool
		)
		for i, m := range maps {
			r, _ := m.Get(key)
			sum += weights[i] * r.Value()
			degraded = degraded || !r.OK()
		}
		composite.Add(core.CompositeEntry{Key: key, Score: sum, Degraded: degraded})
	}
	return composite, nil
}

// checkKeySets verifies every map covers exactly the pairs of the first one.
// Maps cannot hold duplicate keys, so equal sizes plus containment is equality.
func checkKeySets(maps []*core.ScoreMap) error {
	ref := maps[0]
	for _, m := range maps[1:] {
		if m.Len() != ref.Len() {
			return fmt.Errorf("%w: %s has %d pairs, %s has %d",
				core.ErrKeySetMismatch, ref.Strategy(), ref.Len(), m.Strategy(), m.Len())
		}
		for _, key := range ref.Keys() {
			if !m.Has(key) {
				return fmt.Errorf("%w: %s has no score for %s", core.ErrKeySetMismatch, m.Strategy(), key)
			}
		}
	}
	return nil
}
