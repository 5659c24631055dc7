package storage

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalVector(t *testing.T) {
	tests := []struct {
		name   string
		vector []float64
	}{
		{"empty vector", []float64{}},
		{"single value", []float64{0.5}},
		{"unit vector", []float64{0.6, 0.8, 0}},
		{"negative and tiny values", []float64{-1, 1e-300, math.SmallestNonzeroFloat64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalVector(tt.vector)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalVector(data)
			require.NoError(t, err)
			assert.Equal(t, tt.vector, decoded)
		})
	}
}

func TestUnmarshalVector_Invalid(t *testing.T) {
	full := MarshalVector([]float64{1, 2, 3})

	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"missing values", full[:len(full)-4]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalVector(tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTruncatedData))
		})
	}
}
