// Package ranking orders composite scores and derives the views a report needs.
package ranking

import (
	"cmp"
	"slices"

	"github.com/poiesic/overlap/core"
)

const (
	// DefaultTopK is the size of the top view when none is configured.
	DefaultTopK = 15

	// DefaultThreshold is the lowest score included in the flagged view.
	DefaultThreshold = core.ModerateBound
)

// Entry is one ranked pair.
type Entry struct {
	Key      core.PairKey
	Score    float64
	Risk     core.RiskLabel
	Degraded bool
}

// Ranking holds the views derived from one CompositeScoreMap.
type Ranking struct {
	// All pairs, highest score first; ties keep enumeration order.
	All []Entry
	// Top is the first min(TopK, len(All)) entries of All.
	Top []Entry
	// Flagged holds every entry scoring at least Threshold.
	Flagged []Entry

	TopK      int
	Threshold float64
}

type options struct {
	topK      int
	threshold float64
}

// Option configures Rank.
type Option func(*options)

// WithTopK sets the size of the top view. Negative values are treated as 0.
func WithTopK(k int) Option {
	return func(o *options) {
		o.topK = max(k, 0)
	}
}

// WithThreshold sets the cutoff for the flagged view.
func WithThreshold(threshold float64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// Rank sorts composite descending and derives the top and flagged views.
// composite is not modified.
func Rank(composite *core.CompositeScoreMap, opts ...Option) *Ranking {
	o := options{topK: DefaultTopK, threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(&o)
	}

	all := Sorted(composite)
	return &Ranking{
		All:       all,
		Top:       TopK(all, o.topK),
		Flagged:   AboveThreshold(all, o.threshold),
		TopK:      o.topK,
		Threshold: o.threshold,
	}
}

// Sorted returns every composite entry labelled and ordered by descending
// score. The sort is stable.
func Sorted(composite *core.CompositeScoreMap) []Entry {
	if composite.Len() == 0 {
		return []Entry{}
	}

	src := composite.Entries()
	entries := make([]Entry, len(src))
	for i, e := range src {
		entries[i] = Entry{
			Key:      e.Key,
			Score:    e.Score,
			Risk:     core.RiskFor(e.Score),
			Degraded: e.Degraded,
		}
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return entries
}

// TopK returns the first min(k, len(sorted)) entries.
func TopK(sorted []Entry, k int) []Entry {
	k = min(max(k, 0), len(sorted))
	return slices.Clone(sorted[:k])
}

// AboveThreshold returns the entries scoring at least threshold, in order.
func AboveThreshold(sorted []Entry, threshold float64) []Entry {
	flagged := []Entry{}
	for _, e := range sorted {
		if core.AtLeast(e.Score, threshold) {
			flagged = append(flagged, e)
		}
	}
	return flagged
}
