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

package core

import "errors"

// Scoring errors
var (
	// ErrVectorShape indicates two vectors cannot be compared: wrong rank,
	// mismatched dimensions, mixed kinds, or a zero or non-finite norm.
	ErrVectorShape = errors.New("incompatible vector shape")

	// ErrComparison indicates a comparison function failed or panicked.
	ErrComparison = errors.New("comparison failed")

	// ErrScoreRange indicates a decoded score is not a finite value in [-1, 1].
	ErrScoreRange = errors.New("score outside [-1, 1]")
)

// Fusion and configuration errors
var (
	// ErrKeySetMismatch indicates score maps handed to fusion do not cover the same pairs.
	ErrKeySetMismatch = errors.New("score map key sets differ")

	// ErrWeightSum indicates strategy weights do not sum to 1.0.
	ErrWeightSum = errors.New("strategy weights must sum to 1.0")

	// ErrWeightCount indicates the number of weights differs from the number of score maps.
	ErrWeightCount = errors.New("weight count does not match score map count")
)

// Domain validation errors
var (
	// ErrDuplicateIdentity indicates an identity was added to a VectorSet twice.
	ErrDuplicateIdentity = errors.New("duplicate identity")

	// ErrEmptyIdentity indicates an identity is the empty string.
	ErrEmptyIdentity = errors.New("identity cannot be empty")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyContent indicates a document has no text.
	ErrEmptyContent = errors.New("content cannot be empty")
)
