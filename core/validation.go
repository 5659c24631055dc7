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
	"fmt"
	"strings"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Identity must not be empty
//   - Text must contain at least one non-whitespace character
//   - Digest must match Text
//
// NOT validated:
//   - Path (empty for documents supplied directly)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if err := ValidateIdentity(doc.Identity); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if strings.TrimSpace(doc.Text) == "" {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDocument, doc.Identity, ErrEmptyContent)
	}

	if doc.Digest != DigestOf(doc.Text) {
		return fmt.Errorf("%w: %s: digest does not match text", ErrInvalidDocument, doc.Identity)
	}

	return nil
}

// ValidateIdentity checks that an identity is usable as a pair member.
func ValidateIdentity(id Identity) error {
	if strings.TrimSpace(string(id)) == "" {
		return ErrEmptyIdentity
	}
	return nil
}

// ValidateDocuments validates each document and rejects repeated identities.
func ValidateDocuments(docs []*Document) error {
	seen := make(map[Identity]struct{}, len(docs))
	for _, doc := range docs {
		if err := ValidateDocument(doc); err != nil {
			return err
		}
		if _, dup := seen[doc.Identity]; dup {
			return fmt.Errorf("%w: %w: %s", ErrInvalidDocument, ErrDuplicateIdentity, doc.Identity)
		}
		seen[doc.Identity] = struct{}{}
	}
	return nil
}
