// Package fusion combines per-strategy score maps into one composite score
// per pair using fixed, declared weights.
//
// Scores are looked up by PairKey, so the maps may be enumerated in any
// order, but every map must cover exactly the same pairs. Weights are
// validated when a Blend is built, before any scoring happens.
package fusion
