package core

import (
	"iter"
	"math"
	"slices"
)

// SentinelScore is the value a failed pair contributes to arithmetic.
// It lies at the bottom edge of the cosine domain, so callers that need to
// tell failures apart must inspect PairResult.Err rather than the value.
const SentinelScore = -1.0

// Round2 rounds x to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// PairResult is the outcome of comparing one pair under one strategy.
// Exactly one of Score (when Err is nil) or Err is meaningful.
type PairResult struct {
	Key   PairKey
	Score float64
	Err   error
}

// Success records a scored pair.
func Success(key PairKey, score float64) PairResult {
	return PairResult{Key: key, Score: score}
}

// Failure records a pair that could not be scored.
func Failure(key PairKey, err error) PairResult {
	return PairResult{Key: key, Score: SentinelScore, Err: err}
}

// OK reports whether the pair was scored.
func (r PairResult) OK() bool {
	return r.Err == nil
}

// Value returns the score, or SentinelScore for a failure.
func (r PairResult) Value() float64 {
	if r.Err != nil {
		return SentinelScore
	}
	return r.Score
}

// ScoreMap holds the per-pair results of one strategy in enumeration order.
// It is populated once by the scorer and read-only afterwards.
type ScoreMap struct {
	strategy string
	results  []PairResult
	index    map[PairKey]int
}

// NewScoreMap creates an empty ScoreMap for the named strategy.
func NewScoreMap(strategy string) *ScoreMap {
	return &ScoreMap{
		strategy: strategy,
		index:    make(map[PairKey]int),
	}
}

// Add appends r unless its key is already present. It reports whether r was added.
func (m *ScoreMap) Add(r PairResult) bool {
	if _, exists := m.index[r.Key]; exists {
		return false
	}
	m.index[r.Key] = len(m.results)
	m.results = append(m.results, r)
	return true
}

// Strategy returns the name of the strategy that produced the map.
func (m *ScoreMap) Strategy() string {
	return m.strategy
}

// Has reports whether key is present.
func (m *ScoreMap) Has(key PairKey) bool {
	_, ok := m.index[key]
	return ok
}

// Get returns the result stored for key.
func (m *ScoreMap) Get(key PairKey) (PairResult, bool) {
	i, ok := m.index[key]
	if !ok {
		return PairResult{}, false
	}
	return m.results[i], true
}

// Len returns the number of pairs.
func (m *ScoreMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.results)
}

// Keys returns the pair keys in enumeration order.
func (m *ScoreMap) Keys() []PairKey {
	keys := make([]PairKey, len(m.results))
	for i, r := range m.results {
		keys[i] = r.Key
	}
	return keys
}

// Results returns a copy of the results in enumeration order.
func (m *ScoreMap) Results() []PairResult {
	return slices.Clone(m.results)
}

// All iterates over the results in enumeration order.
func (m *ScoreMap) All() iter.Seq2[PairKey, PairResult] {
	return func(yield func(PairKey, PairResult) bool) {
		for _, r := range m.results {
			if !yield(r.Key, r) {
				return
			}
		}
	}
}

// Failures returns the number of pairs that could not be scored.
func (m *ScoreMap) Failures() int {
	n := 0
	for _, r := range m.results {
		if !r.OK() {
			n++
		}
	}
	return n
}

// CompositeEntry is the fused score of one pair.
// Degraded is set when at least one strategy failed to score the pair,
// in which case Score includes that strategy's sentinel contribution.
type CompositeEntry struct {
	Key      PairKey
	Score    float64
	Degraded bool
}

// CompositeScoreMap holds fused scores in enumeration order.
type CompositeScoreMap struct {
	entries []CompositeEntry
	index   map[PairKey]int
}

// NewCompositeScoreMap creates an empty CompositeScoreMap.
func NewCompositeScoreMap() *CompositeScoreMap {
	return &CompositeScoreMap{index: make(map[PairKey]int)}
}

// Add appends e unless its key is already present. It reports whether e was added.
func (c *CompositeScoreMap) Add(e CompositeEntry) bool {
	if _, exists := c.index[e.Key]; exists {
		return false
	}
	c.index[e.Key] = len(c.entries)
	c.entries = append(c.entries, e)
	return true
}

// Get returns the entry for key.
func (c *CompositeScoreMap) Get(key PairKey) (CompositeEntry, bool) {
	i, ok := c.index[key]
	if !ok {
		return CompositeEntry{}, false
	}
	return c.entries[i], true
}

// Len returns the number of pairs.
func (c *CompositeScoreMap) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of the entries in enumeration order.
func (c *CompositeScoreMap) Entries() []CompositeEntry {
	return slices.Clone(c.entries)
}
