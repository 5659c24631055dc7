package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/overlap/core"
	"github.com/poiesic/overlap/ranking"
	"github.com/poiesic/overlap/similarity"
)

// StrategyInfo records a strategy's name and weight.
type StrategyInfo struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Report is everything a renderer needs about one run.
type Report struct {
	RunID       uuid.UUID
	GeneratedAt time.Time
	Threshold   float64
	TopK        int
	Documents   int
	Strategies  []StrategyInfo

	// Pairs is the number of scored pairs; Degraded counts those where at
	// least one strategy failed.
	Pairs    int
	Degraded int

	Top     []ranking.Entry
	Flagged []ranking.Entry
}

// Option configures New.
type Option func(*Report)

// WithStrategies records the strategies and weights used for the composite.
func WithStrategies(strategies []similarity.Strategy) Option {
	return func(r *Report) {
		r.Strategies = make([]StrategyInfo, len(strategies))
		for i, s := range strategies {
			r.Strategies[i] = StrategyInfo{Name: s.Name, Weight: s.Weight}
		}
	}
}

// WithDocuments records how many documents were compared.
func WithDocuments(n int) Option {
	return func(r *Report) {
		r.Documents = n
	}
}

// WithRunID overrides the generated run ID.
func WithRunID(id uuid.UUID) Option {
	return func(r *Report) {
		r.RunID = id
	}
}

// WithTimestamp overrides the generation time.
func WithTimestamp(t time.Time) Option {
	return func(r *Report) {
		r.GeneratedAt = t
	}
}

// New stamps ranked with a fresh run ID and the current time.
func New(ranked *ranking.Ranking, opts ...Option) *Report {
	r := &Report{
		RunID:       uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Threshold:   ranked.Threshold,
		TopK:        ranked.TopK,
		Pairs:       len(ranked.All),
		Top:         ranked.Top,
		Flagged:     ranked.Flagged,
	}
	for _, e := range ranked.All {
		if e.Degraded {
			r.Degraded++
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NoPairsMessage is shown when nothing reaches the threshold.
func (r *Report) NoPairsMessage() string {
	return fmt.Sprintf("No pairs with similarity score >= %.2f", r.Threshold)
}

// Formula returns the composite score as a weighted sum, e.g.
// "0.20 x lexical + 0.80 x semantic".
func (r *Report) Formula() string {
	terms := make([]string, len(r.Strategies))
	for i, s := range r.Strategies {
		terms[i] = fmt.Sprintf("%.2f x %s", s.Weight, s.Name)
	}
	return strings.Join(terms, " + ")
}

// Methodology describes how the scores were produced, one paragraph per line.
func (r *Report) Methodology() []string {
	lines := []string{
		"Every pair of documents is scored once per strategy. Scores are rounded to two decimals.",
	}
	for _, s := range r.Strategies {
		if s.Name == similarity.NameLexical {
			lines = append(lines, fmt.Sprintf(
				"%s (weight %.2f): TF-IDF vectors of word unigrams and bigrams with English stop words removed, compared by dot product.",
				s.Name, s.Weight))
			continue
		}
		lines = append(lines, fmt.Sprintf(
			"%s (weight %.2f): documents are split into overlapping chunks, embedded, mean-pooled and compared by cosine similarity.",
			s.Name, s.Weight))
	}
	if len(r.Strategies) > 0 {
		lines = append(lines, "Composite score = "+r.Formula()+".")
	}
	lines = append(lines,
		fmt.Sprintf("Risk bands: %.2f Moderate Similarity, %.2f Warning, %.2f Possible Risk.",
			core.ModerateBound, core.WarningBound, core.PossibleBound),
		"A pair marked degraded had at least one strategy fail; the failed strategy contributed -1 to its composite.",
	)
	return lines
}
