package similarity

import (
	"errors"
	"math"
	"testing"

	"github.com/poiesic/overlap/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDot(t *testing.T) {
	a := core.NewSparse([]core.Term{{Index: 0, Weight: 0.6}, {Index: 2, Weight: 0.8}})
	b := core.NewSparse([]core.Term{{Index: 2, Weight: 0.5}, {Index: 3, Weight: 0.5}})

	got, err := Dot(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, got, 1e-12)

	rev, err := Dot(b, a)
	require.NoError(t, err)
	assert.Equal(t, got, rev)
}

func TestDot_NoOverlap(t *testing.T) {
	a := core.NewSparse([]core.Term{{Index: 1, Weight: 1}})
	b := core.NewSparse([]core.Term{{Index: 2, Weight: 1}})
	got, err := Dot(a, b)
	require.NoError(t, err)
	assert.Zero(t, got)

	got, err = Dot(a, core.NewSparse(nil))
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestDot_RejectsDense(t *testing.T) {
	_, err := Dot(core.NewDense([]float64{1}), core.NewSparse(nil))
	assert.True(t, errors.Is(err, core.ErrVectorShape))

	_, err = Dot(core.NewSparse(nil), nil)
	assert.True(t, errors.Is(err, core.ErrVectorShape))
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "identical", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, want: 1},
		{name: "scaled", a: []float64{1, 2, 3}, b: []float64{2, 4, 6}, want: 1},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, want: 0},
		{name: "opposite", a: []float64{1, 1}, b: []float64{-1, -1}, want: -1},
		{name: "angled", a: []float64{1, 0}, b: []float64{1, 1}, want: 1 / math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cosine(core.NewDense(tt.a), core.NewDense(tt.b))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCosine_ShapeErrors(t *testing.T) {
	twoRows, err := core.NewBatch(2, 2, []float64{1, 0, 0, 1})
	require.NoError(t, err)

	tests := []struct {
		name string
		a, b core.Vector
	}{
		{name: "dimension mismatch", a: core.NewDense([]float64{1, 2}), b: core.NewDense([]float64{1, 2, 3})},
		{name: "empty embedding", a: core.NewDense(nil), b: core.NewDense([]float64{1})},
		{name: "zero vector", a: core.NewDense([]float64{0, 0}), b: core.NewDense([]float64{1, 1})},
		{name: "nan component", a: core.NewDense([]float64{math.NaN(), 1}), b: core.NewDense([]float64{1, 1})},
		{name: "multi-row batch", a: twoRows, b: core.NewDense([]float64{1, 0})},
		{name: "sparse input", a: core.NewSparse(nil), b: core.NewDense([]float64{1})},
		{name: "truncated data", a: &core.Dense{Rows: 1, Cols: 3, Data: []float64{1}}, b: core.NewDense([]float64{1, 1, 1})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Cosine(tt.a, tt.b)
			assert.True(t, errors.Is(err, core.ErrVectorShape), "got %v", err)
		})
	}
}
