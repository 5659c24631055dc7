package overlap

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/overlap/ai/mock"
	"github.com/poiesic/overlap/config"
	"github.com/poiesic/overlap/core"
	"github.com/poiesic/overlap/fusion"
	"github.com/poiesic/overlap/ingestion"
	"github.com/poiesic/overlap/ranking"
	"github.com/poiesic/overlap/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocs() []*core.Document {
	return []*core.Document{
		core.NewDocument("A", "", "alpha essay"),
		core.NewDocument("B", "", "bravo essay"),
		core.NewDocument("C", "", "charlie essay"),
	}
}

// planarEmbedder returns fixed 2-d vectors so cosine scores are known:
// A-B 0.6, A-C 0, B-C 0.8.
func planarEmbedder() *mock.MockEmbedder {
	vectors := map[string][]float32{
		"alpha essay":   {1, 0},
		"bravo essay":   {0.6, 0.8},
		"charlie essay": {0, 1},
	}
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			v, ok := vectors[text]
			if !ok {
				return nil, errors.New("embedding service unavailable")
			}
			out[i] = v
		}
		return out, nil
	}
	return embedder
}

func newTestAnalyzer(t *testing.T, blend *fusion.Blend, embedder *mock.MockEmbedder, opts ...Option) *Analyzer {
	t.Helper()
	pipeline, err := ingestion.NewPipeline(
		ingestion.WithPoolSize(2),
		ingestion.WithRetry(1, time.Millisecond),
		ingestion.WithProvider(similarity.NameSemantic, mock.NewMockProviderWithEmbedder("planar", embedder)),
	)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	a, err := NewAnalyzer(pipeline, blend, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func semanticOnly(t *testing.T) *fusion.Blend {
	t.Helper()
	blend, err := fusion.NewBlend(similarity.Semantic(similarity.NameSemantic, 1.0))
	require.NoError(t, err)
	return blend
}

func TestNewAnalyzer_Errors(t *testing.T) {
	_, err := NewAnalyzer(nil, fusion.DefaultBlend())
	assert.True(t, errors.Is(err, ErrPipelineRequired))

	pipeline, err := ingestion.NewPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	_, err = NewAnalyzer(pipeline, nil)
	assert.True(t, errors.Is(err, ErrBlendRequired))

	a, err := NewAnalyzer(pipeline, fusion.DefaultBlend(), WithLogger(nil), WithMonitor(nil))
	require.NoError(t, err)
	defer a.Close()
	assert.Len(t, a.Strategies(), 3)
}

func TestAnalyze_RanksPairs(t *testing.T) {
	a := newTestAnalyzer(t, semanticOnly(t), planarEmbedder(), WithTopK(2))

	result, err := a.Analyze(context.Background(), testDocs())
	require.NoError(t, err)

	require.Len(t, result.Scores, 1)
	assert.Equal(t, 3, result.Scores[0].Len())
	assert.Equal(t, 3, result.Composite.Len())

	ranked := result.Ranking
	require.Len(t, ranked.Top, 2)
	assert.Equal(t, core.NewPairKey("B", "C"), ranked.Top[0].Key)
	assert.InDelta(t, 0.8, ranked.Top[0].Score, 1e-9)
	assert.Equal(t, core.RiskPossible, ranked.Top[0].Risk)
	assert.Equal(t, core.NewPairKey("A", "B"), ranked.Top[1].Key)
	assert.InDelta(t, 0.6, ranked.Top[1].Score, 1e-9)
	assert.Equal(t, core.RiskModerate, ranked.Top[1].Risk)

	require.Len(t, ranked.Flagged, 2)
	assert.Len(t, ranked.All, 3)
}

func TestAnalyze_Threshold(t *testing.T) {
	a := newTestAnalyzer(t, semanticOnly(t), planarEmbedder(), WithThreshold(0.7))

	result, err := a.Analyze(context.Background(), testDocs())
	require.NoError(t, err)
	require.Len(t, result.Ranking.Flagged, 1)
	assert.Equal(t, "B and C", result.Ranking.Flagged[0].Key.String())
}

func TestAnalyze_FailedEmbeddingDegradesPairs(t *testing.T) {
	embedder := planarEmbedder()
	docs := append(testDocs(), core.NewDocument("D", "", "delta essay"))

	a := newTestAnalyzer(t, fusion.TwoStrategyBlend(), embedder)
	result, err := a.Analyze(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, 6, result.Composite.Len())
	for _, e := range result.Composite.Entries() {
		assert.Equal(t, e.Key.Contains("D"), e.Degraded, e.Key.String())
	}

	semantic := result.Scores[1]
	assert.Equal(t, similarity.NameSemantic, semantic.Strategy())
	assert.Equal(t, 3, semantic.Failures())

	lexicalAD, ok := result.Scores[0].Get(core.NewPairKey("A", "D"))
	require.True(t, ok)
	composite, ok := result.Composite.Get(core.NewPairKey("A", "D"))
	require.True(t, ok)
	assert.InDelta(t, 0.2*lexicalAD.Value()+0.8*core.SentinelScore, composite.Score, 1e-6)
}

func TestAnalyze_FewerThanTwoDocuments(t *testing.T) {
	embedder := planarEmbedder()
	a := newTestAnalyzer(t, fusion.TwoStrategyBlend(), embedder)

	for _, docs := range [][]*core.Document{nil, testDocs()[:1]} {
		result, err := a.Analyze(context.Background(), docs)
		require.NoError(t, err)
		assert.Len(t, result.Scores, 2)
		assert.Zero(t, result.Composite.Len())
		assert.Empty(t, result.Ranking.Top)
		assert.Empty(t, result.Ranking.Flagged)
	}
	assert.Zero(t, embedder.CallCount())
}

func TestAnalyze_InvalidDocuments(t *testing.T) {
	a := newTestAnalyzer(t, semanticOnly(t), planarEmbedder())

	docs := []*core.Document{
		core.NewDocument("A", "", "alpha essay"),
		core.NewDocument("A", "", "bravo essay"),
	}
	_, err := a.Analyze(context.Background(), docs)
	assert.True(t, errors.Is(err, core.ErrDuplicateIdentity))
}

func TestAnalyze_MissingProvider(t *testing.T) {
	a := newTestAnalyzer(t, fusion.DefaultBlend(), planarEmbedder())

	_, err := a.Analyze(context.Background(), testDocs())
	assert.True(t, errors.Is(err, ingestion.ErrProviderRequired))
}

func TestAnalyze_Cancelled(t *testing.T) {
	a := newTestAnalyzer(t, semanticOnly(t), planarEmbedder())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.Analyze(ctx, testDocs())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAnalyzer_Close(t *testing.T) {
	a := newTestAnalyzer(t, semanticOnly(t), planarEmbedder())
	require.NoError(t, a.Close())
	require.NoError(t, a.Close())

	_, err := a.Analyze(context.Background(), testDocs())
	assert.True(t, errors.Is(err, ErrAnalyzerClosed))
}

type recordingMonitor struct {
	events []string
}

func (m *recordingMonitor) Start(docs []*core.Document) {
	m.events = append(m.events, "start")
}

func (m *recordingMonitor) AfterVectorize(strategy string, vectors *core.VectorSet) {
	m.events = append(m.events, "vectorize:"+strategy)
}

func (m *recordingMonitor) AfterScoring(scores *core.ScoreMap) {
	m.events = append(m.events, "score:"+scores.Strategy())
}

func (m *recordingMonitor) AfterFusion(composite *core.CompositeScoreMap) {
	m.events = append(m.events, "fuse")
}

func (m *recordingMonitor) Finish(ranked *ranking.Ranking) {
	m.events = append(m.events, "finish")
}

func TestAnalyze_Monitor(t *testing.T) {
	monitor := &recordingMonitor{}
	a := newTestAnalyzer(t, fusion.TwoStrategyBlend(), planarEmbedder(), WithMonitor(monitor))

	_, err := a.Analyze(context.Background(), testDocs())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"start",
		"vectorize:lexical",
		"vectorize:semantic",
		"score:lexical",
		"score:semantic",
		"fuse",
		"finish",
	}, monitor.events)
}

// newEmbeddingServer answers OpenAI embedding requests with a vector
// derived from each input's length.
func newEmbeddingServer(t *testing.T, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		data := make([]map[string]any, len(req.Input))
		for i, text := range req.Input {
			data[i] = map[string]any{
				"object":    "embedding",
				"embedding": []float32{float32(len(text)), float32(strings.Count(text, "e")), 1},
				"index":     i,
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testSettings(host, cacheDir string) *config.Settings {
	s := config.New()
	s.Strategies = []config.StrategySettings{
		{Name: similarity.NameLexical, Kind: config.KindLexical, Weight: 0.2},
		{Name: similarity.NameSemantic, Kind: config.KindSemantic, Model: "test-model", Weight: 0.8},
	}
	s.EmbeddingHost = host
	s.CacheDir = cacheDir
	s.PoolSize = 2
	s.RetryAttempts = 1
	s.RetryDelayMS = 1
	return s
}

func TestOpen(t *testing.T) {
	var requests atomic.Int32
	srv := newEmbeddingServer(t, &requests)
	cacheDir := t.TempDir()

	run := func() *Result {
		a, err := Open(testSettings(srv.URL, cacheDir))
		require.NoError(t, err)
		defer a.Close()

		result, err := a.Analyze(context.Background(), testDocs())
		require.NoError(t, err)
		return result
	}

	first := run()
	assert.Equal(t, 3, first.Composite.Len())
	for _, e := range first.Composite.Entries() {
		assert.False(t, e.Degraded, e.Key.String())
	}
	afterFirst := requests.Load()
	assert.Positive(t, afterFirst)

	second := run()
	assert.Equal(t, afterFirst, requests.Load(), "cached vectors are reused")
	assert.Equal(t, first.Composite.Entries(), second.Composite.Entries())
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(nil)
	assert.True(t, errors.Is(err, ErrSettingsRequired))

	s := testSettings("http://localhost:1", "")
	s.Strategies[0].Weight = 0.5
	_, err = Open(s)
	assert.True(t, errors.Is(err, core.ErrWeightSum))

	s = testSettings("http://localhost:1", "")
	s.Strategies = []config.StrategySettings{
		{Name: similarity.NameLexical, Kind: config.KindSemantic, Model: "test-model", Weight: 1},
	}
	_, err = Open(s)
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))

	s = testSettings("http://localhost:1", "")
	s.TopK = -1
	_, err = Open(s)
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))
}
