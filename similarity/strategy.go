package similarity

import (
	"fmt"

	"github.com/poiesic/overlap/core"
)

// Strategy names used by the default configurations.
const (
	NameLexical            = "lexical"
	NameSemantic           = "semantic"
	NameSemanticContext    = "semantic-context"
	NameSemanticParaphrase = "semantic-paraphrase"
)

// CompareFunc returns the similarity of two vectors produced under the same strategy.
type CompareFunc func(a, b core.Vector) (float64, error)

// Strategy describes one way of scoring a pair and its share of the composite score.
type Strategy struct {
	Name    string
	Weight  float64
	Compare CompareFunc

	// Input is the kind of vector Compare expects.
	Input core.VectorKind
}

// Lexical returns the sparse dot-product strategy.
func Lexical(weight float64) Strategy {
	return Strategy{Name: NameLexical, Weight: weight, Compare: Dot, Input: core.VectorSparse}
}

// Semantic returns a cosine strategy over dense embeddings.
func Semantic(name string, weight float64) Strategy {
	return Strategy{Name: name, Weight: weight, Compare: Cosine, Input: core.VectorDense}
}

// Validate checks the descriptor is complete.
func (s Strategy) Validate() error {
	if s.Name == "" {
		return ErrStrategyNameRequired
	}
	if s.Compare == nil {
		return fmt.Errorf("%w: %s", ErrCompareRequired, s.Name)
	}
	if s.Weight < 0 || s.Weight > 1 {
		return fmt.Errorf("%w: %s has %v", ErrInvalidWeight, s.Name, s.Weight)
	}
	return nil
}

// Weights returns the weights of strategies in order.
func Weights(strategies []Strategy) []float64 {
	weights := make([]float64, len(strategies))
	for i, s := range strategies {
		weights[i] = s.Weight
	}
	return weights
}
