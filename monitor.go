package overlap

import (
	"github.com/poiesic/overlap/core"
	"github.com/poiesic/overlap/ranking"
)

// Monitor provides hooks to observe an analysis.
// Implement this interface to inspect intermediate results.
// Hooks are called from the goroutine running Analyze.
type Monitor interface {
	Start(docs []*core.Document)
	AfterVectorize(strategy string, vectors *core.VectorSet)
	AfterScoring(scores *core.ScoreMap)
	AfterFusion(composite *core.CompositeScoreMap)
	Finish(ranked *ranking.Ranking)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ []*core.Document)                   {}
func (n *noopMonitor) AfterVectorize(_ string, _ *core.VectorSet) {}
func (n *noopMonitor) AfterScoring(_ *core.ScoreMap)              {}
func (n *noopMonitor) AfterFusion(_ *core.CompositeScoreMap)      {}
func (n *noopMonitor) Finish(_ *ranking.Ranking)                  {}
