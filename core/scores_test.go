package core

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0.123, want: 0.12},
		{in: 0.126, want: 0.13},
		{in: -0.999, want: -1.0},
		{in: 1.0, want: 1.0},
		{in: 0, want: 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round2(tt.in), 1e-12, "Round2(%v)", tt.in)
	}
}

func TestPairResult(t *testing.T) {
	key := NewPairKey("A", "B")

	ok := Success(key, 0.42)
	assert.True(t, ok.OK())
	assert.Equal(t, 0.42, ok.Value())

	failed := Failure(key, ErrVectorShape)
	assert.False(t, failed.OK())
	assert.Equal(t, SentinelScore, failed.Value())
	assert.True(t, errors.Is(failed.Err, ErrVectorShape))

	// A genuine -1.0 score stays distinguishable from a failure.
	opposite := Success(key, -1.0)
	assert.True(t, opposite.OK())
	assert.Equal(t, failed.Value(), opposite.Value())
}

func TestScoreMap(t *testing.T) {
	m := NewScoreMap("lexical")
	ab := NewPairKey("A", "B")
	ac := NewPairKey("A", "C")

	assert.True(t, m.Add(Success(ab, 0.1)))
	assert.True(t, m.Add(Failure(ac, ErrComparison)))
	assert.False(t, m.Add(Success(NewPairKey("B", "A"), 0.9)), "reverse key is a duplicate")

	assert.Equal(t, "lexical", m.Strategy())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []PairKey{ab, ac}, m.Keys())
	assert.Equal(t, 1, m.Failures())
	assert.True(t, m.Has(ab))

	r, ok := m.Get(ab)
	require.True(t, ok)
	assert.Equal(t, 0.1, r.Value())

	var seen []PairKey
	for k := range m.All() {
		seen = append(seen, k)
	}
	assert.Equal(t, m.Keys(), seen)
}

func TestScoreMap_JSONRoundTrip(t *testing.T) {
	m := NewScoreMap("semantic")
	m.Add(Success(NewPairKey("A", "B"), 0.2))
	m.Add(Failure(NewPairKey("A", "C"), ErrVectorShape))

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded ScoreMap
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "semantic", decoded.Strategy())
	assert.Equal(t, m.Keys(), decoded.Keys())

	r, ok := decoded.Get(NewPairKey("A", "C"))
	require.True(t, ok)
	assert.False(t, r.OK())
	assert.True(t, errors.Is(r.Err, ErrComparison))
}

func TestScoreMap_UnmarshalRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "self pair", data: `{"strategy":"x","scores":[{"a":"A","b":"A","score":1}]}`},
		{name: "empty identity", data: `{"strategy":"x","scores":[{"a":"","b":"A","score":1}]}`},
		{name: "duplicate", data: `{"strategy":"x","scores":[{"a":"A","b":"B","score":1},{"a":"B","b":"A","score":1}]}`},
		{name: "score above one", data: `{"strategy":"x","scores":[{"a":"A","b":"B","score":7.5}]}`, want: ErrScoreRange},
		{name: "score below minus one", data: `{"strategy":"x","scores":[{"a":"A","b":"B","score":-1.2}]}`, want: ErrScoreRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m ScoreMap
			err := json.Unmarshal([]byte(tt.data), &m)
			require.Error(t, err)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "got %v", err)
			}
		})
	}
}

func TestScoreMap_UnmarshalRoundsScores(t *testing.T) {
	data := `{"strategy":"x","scores":[
		{"a":"A","b":"B","score":0.123456},
		{"a":"A","b":"C","score":1.004},
		{"a":"B","b":"C","score":-1}
	]}`

	var m ScoreMap
	require.NoError(t, json.Unmarshal([]byte(data), &m))

	ab, _ := m.Get(NewPairKey("A", "B"))
	assert.Equal(t, 0.12, ab.Value())
	ac, _ := m.Get(NewPairKey("A", "C"))
	assert.Equal(t, 1.0, ac.Value())
	bc, _ := m.Get(NewPairKey("B", "C"))
	assert.True(t, bc.OK(), "-1 is a valid score, not a failure")
	assert.Equal(t, -1.0, bc.Value())
}

func TestCompositeScoreMap(t *testing.T) {
	c := NewCompositeScoreMap()
	ab := NewPairKey("A", "B")
	assert.True(t, c.Add(CompositeEntry{Key: ab, Score: 0.5}))
	assert.False(t, c.Add(CompositeEntry{Key: ab, Score: 0.7}))

	e, ok := c.Get(ab)
	require.True(t, ok)
	assert.Equal(t, 0.5, e.Score)
	assert.Equal(t, 1, c.Len())
	assert.Len(t, c.Entries(), 1)
}
