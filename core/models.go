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

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// Identity is the label of a comparable document, e.g. a team name.
type Identity string

// Digest is a BLAKE2b content hash used to recognise identical document text.
type Digest [16]byte

// DigestOf hashes text into a Digest.
// Identical text always produces an identical digest.
func DigestOf(text string) Digest {
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write([]byte(text))
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// String returns the lowercase hex form of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d is the zero digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// Document is the plain text of one submission and the identity it is compared under.
type Document struct {
	Identity Identity
	Path     string // Source file, empty when the text was supplied directly
	Text     string
	Digest   Digest
}

// NewDocument builds a Document and computes its digest.
func NewDocument(identity Identity, path, text string) *Document {
	return &Document{
		Identity: identity,
		Path:     path,
		Text:     text,
		Digest:   DigestOf(text),
	}
}

// PairKey identifies an unordered pair of distinct identities.
// The members are stored in sorted order so (A,B) and (B,A) compare equal.
type PairKey struct {
	First  Identity
	Second Identity
}

// NewPairKey returns the canonical key for a and b.
func NewPairKey(a, b Identity) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{First: a, Second: b}
}

// String renders the key as "A and B".
func (k PairKey) String() string {
	return string(k.First) + " and " + string(k.Second)
}

// Contains reports whether id is one of the pair's members.
func (k PairKey) Contains(id Identity) bool {
	return k.First == id || k.Second == id
}
