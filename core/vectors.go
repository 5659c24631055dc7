package core

import (
	"fmt"
	"slices"
)

// VectorKind distinguishes dense embeddings from sparse lexical features.
type VectorKind int

const (
	// VectorDense is a fixed-length embedding.
	VectorDense VectorKind = iota + 1
	// VectorSparse is an index-sorted list of weighted features.
	VectorSparse
)

func (k VectorKind) String() string {
	switch k {
	case VectorDense:
		return "dense"
	case VectorSparse:
		return "sparse"
	default:
		return fmt.Sprintf("VectorKind(%d)", int(k))
	}
}

// Vector is the representation of one identity under one strategy.
type Vector interface {
	Kind() VectorKind
}

// Dense is a row-major batch of embeddings. A single embedding is a 1-row batch.
type Dense struct {
	Rows int
	Cols int
	Data []float64
}

var _ Vector = (*Dense)(nil)

// NewDense copies a single embedding into a 1-row batch.
func NewDense(values []float64) *Dense {
	if len(values) == 0 {
		return &Dense{}
	}
	return &Dense{Rows: 1, Cols: len(values), Data: slices.Clone(values)}
}

// NewDenseFromFloat32 converts an embedding returned by a model into a 1-row batch.
func NewDenseFromFloat32(values []float32) *Dense {
	if len(values) == 0 {
		return &Dense{}
	}
	data := make([]float64, len(values))
	for i, v := range values {
		data[i] = float64(v)
	}
	return &Dense{Rows: 1, Cols: len(values), Data: data}
}

// NewBatch builds a rows x cols batch. len(data) must equal rows*cols.
func NewBatch(rows, cols int, data []float64) (*Dense, error) {
	if rows < 0 || cols < 0 || rows*cols != len(data) {
		return nil, fmt.Errorf("%w: %d values for %dx%d batch", ErrVectorShape, len(data), rows, cols)
	}
	return &Dense{Rows: rows, Cols: cols, Data: data}, nil
}

func (d *Dense) Kind() VectorKind { return VectorDense }

// IsEmpty reports whether the batch has no values, which is how a failed
// embedding is represented.
func (d *Dense) IsEmpty() bool {
	return d == nil || d.Rows == 0 || d.Cols == 0
}

// Row returns row i without copying.
func (d *Dense) Row(i int) []float64 {
	return d.Data[i*d.Cols : (i+1)*d.Cols]
}

// Term is one feature of a sparse vector.
type Term struct {
	Index  int
	Weight float64
}

// Sparse is a sparse feature vector with terms sorted by ascending Index.
type Sparse struct {
	Terms []Term
}

var _ Vector = (*Sparse)(nil)

// NewSparse copies terms, sorts them by index and sums duplicate indices.
func NewSparse(terms []Term) *Sparse {
	sorted := slices.Clone(terms)
	slices.SortFunc(sorted, func(a, b Term) int { return a.Index - b.Index })

	merged := sorted[:0]
	for _, t := range sorted {
		if n := len(merged); n > 0 && merged[n-1].Index == t.Index {
			merged[n-1].Weight += t.Weight
			continue
		}
		merged = append(merged, t)
	}
	return &Sparse{Terms: merged}
}

func (s *Sparse) Kind() VectorKind { return VectorSparse }

// VectorSet maps identities to vectors produced under a single strategy.
// Iteration follows insertion order so pair enumeration is deterministic.
type VectorSet struct {
	ids     []Identity
	vectors map[Identity]Vector
}

// NewVectorSet creates an empty VectorSet.
func NewVectorSet() *VectorSet {
	return &VectorSet{vectors: make(map[Identity]Vector)}
}

// Add appends a vector for id. Adding an identity twice returns ErrDuplicateIdentity.
func (s *VectorSet) Add(id Identity, v Vector) error {
	if id == "" {
		return ErrEmptyIdentity
	}
	if _, exists := s.vectors[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateIdentity, id)
	}
	s.ids = append(s.ids, id)
	s.vectors[id] = v
	return nil
}

// Get returns the vector stored for id.
func (s *VectorSet) Get(id Identity) (Vector, bool) {
	v, ok := s.vectors[id]
	return v, ok
}

// Identities returns the identities in insertion order.
func (s *VectorSet) Identities() []Identity {
	return slices.Clone(s.ids)
}

// Len returns the number of identities in the set.
func (s *VectorSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}
