// Package similarity scores every unordered pair of identities under one
// strategy.
//
// A Strategy is a plain descriptor: a name, a fusion weight and a comparison
// function. Nothing in this package holds model or vocabulary state; fitted
// parameters live in whatever produced the vectors.
//
// Per-pair failures never escape ScorePairs. A comparison that errors or
// panics is recorded as a failed core.PairResult, whose value is the
// sentinel -1.0, and the pass moves on to the next pair.
package similarity
