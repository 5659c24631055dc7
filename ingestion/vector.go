package ingestion

import (
	"math"

	"github.com/tmc/langchaingo/embeddings"
)

// NormalizeVector scales v to unit length.
// Returns a new vector. A zero vector stays zero.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}
	magnitude := float32(math.Sqrt(sumSquares))

	result := make([]float32, len(v))
	if magnitude == 0 {
		return result
	}
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}

// MeanPool normalizes every chunk vector, averages them with equal weight
// and renormalizes the average.
func MeanPool(chunks [][]float32) ([]float32, error) {
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}

	normalized := make([][]float32, len(chunks))
	weights := make([]int, len(chunks))
	for i, chunk := range chunks {
		normalized[i] = NormalizeVector(chunk)
		weights[i] = 1
	}
	return embeddings.CombineVectors(normalized, weights)
}
