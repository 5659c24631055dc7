package lexical

import "errors"

var (
	// ErrEmptyCorpus is returned when Fit receives no documents.
	ErrEmptyCorpus = errors.New("corpus is empty")

	// ErrEmptyVocabulary is returned when no document yields a usable term.
	ErrEmptyVocabulary = errors.New("empty vocabulary; documents may only contain stop words")

	// ErrInvalidNGramRange is returned for an n-gram range outside 1 <= min <= max.
	ErrInvalidNGramRange = errors.New("invalid n-gram range")
)
