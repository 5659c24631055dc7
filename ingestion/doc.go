// Package ingestion turns a directory of submissions into the per-strategy
// vector sets that the scorer compares.
//
// LoadDirectory reads the documents. A Pipeline then produces one
// core.VectorSet per strategy:
//   - the lexical strategy fits a TF-IDF model over the whole corpus
//   - each semantic strategy splits documents into overlapping chunks,
//     embeds them through its ai.Provider, and mean-pools the normalized
//     chunk vectors into one unit vector per document
//
// Embedding runs concurrently across documents on a worker pool. A document
// that cannot be embedded after its retries gets an empty vector and a
// warning; the run itself carries on and its pairs surface as failures.
package ingestion
