// Package lexical turns document text into TF-IDF feature vectors.
//
// A Model is fitted once over the whole corpus of a run and then applied to
// each document. The model is an ordinary value: nothing is cached between
// runs or shared between callers.
package lexical

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/poiesic/overlap/core"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

type config struct {
	minN, maxN int
	stopWords  map[string]struct{}
}

// Option configures Fit.
type Option func(*config) error

// WithNGramRange sets the smallest and largest n-gram to extract. Default is 1 to 2.
func WithNGramRange(minN, maxN int) Option {
	return func(c *config) error {
		if minN < 1 || maxN < minN {
			return fmt.Errorf("%w: (%d, %d)", ErrInvalidNGramRange, minN, maxN)
		}
		c.minN, c.maxN = minN, maxN
		return nil
	}
}

// WithStopWords replaces the stop word list. Pass nil to keep every token.
func WithStopWords(words []string) Option {
	return func(c *config) error {
		c.stopWords = toSet(words)
		return nil
	}
}

// Model is a fitted TF-IDF vocabulary.
type Model struct {
	cfg        config
	vocabulary map[string]int
	terms      []string
	idf        []float64
}

// Fit builds the vocabulary and inverse document frequencies of corpus.
//
// Features are the n-grams of lowercased tokens left after stop word
// removal. Feature indices follow the alphabetical order of the terms.
// IDF is smoothed as ln((1+n)/(1+df)) + 1.
func Fit(corpus []string, opts ...Option) (*Model, error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}

	cfg := config{minN: 1, maxN: 2, stopWords: toSet(englishStopWords)}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, term := range cfg.analyze(doc) {
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	slices.Sort(terms)

	n := float64(len(corpus))
	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		vocabulary[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return &Model{cfg: cfg, vocabulary: vocabulary, terms: terms, idf: idf}, nil
}

// Transform returns the L2-normalized TF-IDF vector of text.
// Terms outside the fitted vocabulary are ignored, so unseen text yields an
// empty vector.
func (m *Model) Transform(text string) *core.Sparse {
	counts := make(map[int]float64)
	for _, term := range m.cfg.analyze(text) {
		if idx, ok := m.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	terms := make([]core.Term, 0, len(counts))
	var sumSquares float64
	for idx, tf := range counts {
		w := tf * m.idf[idx]
		sumSquares += w * w
		terms = append(terms, core.Term{Index: idx, Weight: w})
	}
	if sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for i := range terms {
			terms[i].Weight /= norm
		}
	}
	return core.NewSparse(terms)
}

// Size returns the number of features in the vocabulary.
func (m *Model) Size() int {
	return len(m.terms)
}

// Term returns the feature at index i.
func (m *Model) Term(i int) string {
	return m.terms[i]
}

// Index returns the feature index of term.
func (m *Model) Index(term string) (int, bool) {
	i, ok := m.vocabulary[term]
	return i, ok
}

// IDF returns the inverse document frequency of the feature at index i.
func (m *Model) IDF(i int) float64 {
	return m.idf[i]
}

// analyze tokenizes text, drops stop words and expands the remaining tokens
// into n-grams joined by single spaces.
func (c config) analyze(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := c.stopWords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}

	var grams []string
	for n := c.minN; n <= c.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
