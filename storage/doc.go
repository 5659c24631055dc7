// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package storage defines the persistence abstractions used by overlap.
//
// The only persisted data is the semantic vector cache. Embedding a corpus
// through a remote model is the slowest step of a run, and the vector of a
// document depends only on its content and the model, so vectors are cached
// under (model, content digest).
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the interface:
//
//	cache, err := badger.NewVectorCache(dir)  // returns storage.VectorCache
//
// Internal constructors (newBackend, etc.) may return concrete types.
//
// # Usage
//
//	cache, err := badger.NewVectorCache("/var/cache/overlap")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cache.Close()
//
//	vec, err := cache.Get(ctx, model, doc.Digest)
//	if errors.Is(err, storage.ErrNotFound) {
//	    // embed and Put
//	}
//
// Tests use badger.NewMemoryCache.
//
// # Thread Safety
//
// VectorCache implementations must be safe for concurrent use.
package storage
