// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package overlap scores how much every pair of documents in a collection
// overlaps and ranks the pairs by a weighted composite score.
//
// An Analyzer runs the stages in order: vectorize each document once per
// strategy, score every pair per strategy, fuse the per-strategy scores and
// rank the composite.
package overlap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/overlap/core"
	"github.com/poiesic/overlap/fusion"
	"github.com/poiesic/overlap/ingestion"
	"github.com/poiesic/overlap/ranking"
	"github.com/poiesic/overlap/similarity"
)

// Result holds every intermediate product of one analysis.
type Result struct {
	// Scores has one map per strategy, in blend order.
	Scores    []*core.ScoreMap
	Composite *core.CompositeScoreMap
	Ranking   *ranking.Ranking
}

// Analyzer wires vectorization, scoring, fusion and ranking together.
type Analyzer struct {
	pipeline     *ingestion.Pipeline
	ownsPipeline bool
	pipelineOpts []ingestion.Option
	scorer       *similarity.Scorer
	scorerOpts   []similarity.Option
	blend        *fusion.Blend
	topK         int
	threshold    float64
	monitor      Monitor
	closers      []io.Closer
	closed       bool
	base         *slog.Logger
	logger       *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer) error

// WithTopK sets the size of the top view. Default is ranking.DefaultTopK.
func WithTopK(k int) Option {
	return func(a *Analyzer) error {
		a.topK = max(k, 0)
		return nil
	}
}

// WithThreshold sets the flagging threshold. Default is ranking.DefaultThreshold.
func WithThreshold(threshold float64) Option {
	return func(a *Analyzer) error {
		a.threshold = threshold
		return nil
	}
}

// WithMonitor installs hooks that observe each stage.
func WithMonitor(monitor Monitor) Option {
	return func(a *Analyzer) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		a.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.base = logger
		a.logger = logger.With("component", "analyzer")
		return nil
	}
}

// WithScorerOptions passes options through to the similarity scorer.
func WithScorerOptions(opts ...similarity.Option) Option {
	return func(a *Analyzer) error {
		a.scorerOpts = append(a.scorerOpts, opts...)
		return nil
	}
}

// WithPipelineOptions passes extra options to the pipeline Open builds.
// NewAnalyzer ignores them because the caller supplies the pipeline.
func WithPipelineOptions(opts ...ingestion.Option) Option {
	return func(a *Analyzer) error {
		a.pipelineOpts = append(a.pipelineOpts, opts...)
		return nil
	}
}

// NewAnalyzer creates an Analyzer around a caller-owned pipeline.
func NewAnalyzer(pipeline *ingestion.Pipeline, blend *fusion.Blend, opts ...Option) (*Analyzer, error) {
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}
	a, err := newAnalyzer(blend, opts)
	if err != nil {
		return nil, err
	}
	a.pipeline = pipeline
	return a, nil
}

func newAnalyzer(blend *fusion.Blend, opts []Option) (*Analyzer, error) {
	if blend == nil {
		return nil, ErrBlendRequired
	}

	a := &Analyzer{
		blend:     blend,
		topK:      ranking.DefaultTopK,
		threshold: ranking.DefaultThreshold,
		monitor:   &noopMonitor{},
		base:      slog.Default(),
		logger:    slog.Default().With("component", "analyzer"),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	scorer, err := similarity.NewScorer(append([]similarity.Option{similarity.WithLogger(a.base)}, a.scorerOpts...)...)
	if err != nil {
		return nil, err
	}
	a.scorer = scorer
	return a, nil
}

// Strategies returns the blended strategies in fusion order.
func (a *Analyzer) Strategies() []similarity.Strategy {
	return a.blend.Strategies()
}

// Analyze scores every pair of docs and ranks the composite scores.
//
// Per-pair failures never abort the run: they surface as degraded entries.
// Errors come from invalid documents, a missing embedding provider, or ctx.
// Fewer than two documents produce an empty ranking without vectorizing.
func (a *Analyzer) Analyze(ctx context.Context, docs []*core.Document) (*Result, error) {
	if a.closed {
		return nil, ErrAnalyzerClosed
	}
	if err := core.ValidateDocuments(docs); err != nil {
		return nil, err
	}

	start := time.Now()
	a.monitor.Start(docs)
	strategies := a.blend.Strategies()

	var maps []*core.ScoreMap
	if len(docs) < 2 {
		a.logger.Warn("fewer than two documents, nothing to compare", "documents", len(docs))
		maps = make([]*core.ScoreMap, len(strategies))
		for i, s := range strategies {
			maps[i] = core.NewScoreMap(s.Name)
		}
	} else {
		sets, err := a.pipeline.Vectorize(ctx, docs, strategies)
		if err != nil {
			return nil, err
		}
		for _, s := range strategies {
			a.monitor.AfterVectorize(s.Name, sets[s.Name])
		}

		maps, err = a.scorer.ScoreAll(ctx, sets, strategies)
		if err != nil {
			return nil, err
		}
	}

	for _, m := range maps {
		if failures := m.Failures(); failures > 0 {
			a.logger.Warn("strategy failed to score some pairs", "strategy", m.Strategy(), "failed", failures, "pairs", m.Len())
		}
		a.monitor.AfterScoring(m)
	}

	composite, err := a.blend.Fuse(maps)
	if err != nil {
		return nil, err
	}
	a.monitor.AfterFusion(composite)

	ranked := ranking.Rank(composite, ranking.WithTopK(a.topK), ranking.WithThreshold(a.threshold))
	a.monitor.Finish(ranked)

	a.logger.Info("analysis complete",
		"documents", len(docs),
		"pairs", composite.Len(),
		"flagged", len(ranked.Flagged),
		"elapsed", time.Since(start))

	return &Result{Scores: maps, Composite: composite, Ranking: ranked}, nil
}

// Close releases the scorer and everything Open created.
// A pipeline passed to NewAnalyzer is left to the caller.
func (a *Analyzer) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	if a.scorer != nil {
		a.scorer.Release()
	}
	if a.ownsPipeline && a.pipeline != nil {
		a.pipeline.Release()
	}

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Error("error closing resource", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
