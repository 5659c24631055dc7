package ingestion

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVector(t *testing.T) {
	tests := []struct {
		name     string
		input    []float32
		expected []float32
	}{
		{"3-4-5 triangle", []float32{3, 4}, []float32{0.6, 0.8}},
		{"already unit", []float32{1, 0, 0}, []float32{1, 0, 0}},
		{"zero vector", []float32{0, 0}, []float32{0, 0}},
		{"empty", []float32{}, []float32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeVector(tt.input)
			require.Len(t, got, len(tt.expected))
			for i := range got {
				assert.InDelta(t, tt.expected[i], got[i], 1e-6)
			}
		})
	}
}

func TestMeanPool(t *testing.T) {
	// Chunk magnitudes must not matter: each is normalized first.
	pooled, err := MeanPool([][]float32{{10, 0}, {0, 0.5}})
	require.NoError(t, err)
	require.Len(t, pooled, 2)
	assert.InDelta(t, 1/math.Sqrt2, pooled[0], 1e-6)
	assert.InDelta(t, 1/math.Sqrt2, pooled[1], 1e-6)
}

func TestMeanPool_Errors(t *testing.T) {
	_, err := MeanPool(nil)
	assert.True(t, errors.Is(err, ErrNoChunks))

	_, err = MeanPool([][]float32{{1, 0}, {1}})
	assert.Error(t, err)
}
