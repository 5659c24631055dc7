package similarity

import (
	"fmt"
	"math"

	"github.com/poiesic/overlap/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dot is the inner product of two sparse vectors.
// Feature extraction is expected to have normalized them already.
func Dot(a, b core.Vector) (float64, error) {
	sa, ok := a.(*core.Sparse)
	if !ok || sa == nil {
		return 0, fmt.Errorf("%w: want sparse, got %s", core.ErrVectorShape, kindOf(a))
	}
	sb, ok := b.(*core.Sparse)
	if !ok || sb == nil {
		return 0, fmt.Errorf("%w: want sparse, got %s", core.ErrVectorShape, kindOf(b))
	}

	// Merge join over the sorted indices.
	var sum float64
	i, j := 0, 0
	for i < len(sa.Terms) && j < len(sb.Terms) {
		switch ti, tj := sa.Terms[i], sb.Terms[j]; {
		case ti.Index == tj.Index:
			sum += ti.Weight * tj.Weight
			i++
			j++
		case ti.Index < tj.Index:
			i++
		default:
			j++
		}
	}
	return sum, nil
}

// Cosine is the cosine similarity of two dense embeddings.
// Both inputs are treated as batches and must each hold exactly one row of
// the same width; the result is the single cell of the row-normalized
// similarity matrix.
func Cosine(a, b core.Vector) (float64, error) {
	ma, err := unitBatch(a)
	if err != nil {
		return 0, err
	}
	mb, err := unitBatch(b)
	if err != nil {
		return 0, err
	}

	_, ca := ma.Dims()
	_, cb := mb.Dims()
	if ca != cb {
		return 0, fmt.Errorf("%w: dimension %d vs %d", core.ErrVectorShape, ca, cb)
	}

	var sim mat.Dense
	sim.Mul(ma, mb.T())
	if r, c := sim.Dims(); r != 1 || c != 1 {
		return 0, fmt.Errorf("%w: similarity matrix is %dx%d", core.ErrVectorShape, r, c)
	}

	// Clamp float drift so identical vectors score exactly 1.
	return math.Max(-1, math.Min(1, sim.At(0, 0))), nil
}

// unitBatch converts a dense vector into a 1-row matrix with unit norm.
func unitBatch(v core.Vector) (*mat.Dense, error) {
	d, ok := v.(*core.Dense)
	if !ok {
		return nil, fmt.Errorf("%w: want dense, got %s", core.ErrVectorShape, kindOf(v))
	}
	if d.IsEmpty() {
		return nil, fmt.Errorf("%w: empty embedding", core.ErrVectorShape)
	}
	if d.Rows != 1 {
		return nil, fmt.Errorf("%w: batch of %d rows, want 1", core.ErrVectorShape, d.Rows)
	}
	if len(d.Data) != d.Rows*d.Cols {
		return nil, fmt.Errorf("%w: %d values for %dx%d batch", core.ErrVectorShape, len(d.Data), d.Rows, d.Cols)
	}

	row := make([]float64, d.Cols)
	copy(row, d.Row(0))
	norm := floats.Norm(row, 2)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, fmt.Errorf("%w: norm is %v", core.ErrVectorShape, norm)
	}
	floats.Scale(1/norm, row)
	return mat.NewDense(1, d.Cols, row), nil
}

func kindOf(v core.Vector) string {
	if v == nil {
		return "nil"
	}
	return v.Kind().String()
}
