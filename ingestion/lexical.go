package ingestion

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/overlap/core"
	"github.com/poiesic/overlap/lexical"
)

// lexicalProcessor fits a TF-IDF model over the corpus and transforms every
// document with it.
type lexicalProcessor struct {
	opts   []lexical.Option
	logger *slog.Logger
}

var _ processor = (*lexicalProcessor)(nil)

func newLexicalProcessor(logger *slog.Logger, opts ...lexical.Option) *lexicalProcessor {
	return &lexicalProcessor{
		opts:   opts,
		logger: logger.With("processor", "lexical"),
	}
}

func (lp *lexicalProcessor) vectorize(ctx context.Context, docs []*core.Document) (*core.VectorSet, error) {
	set := core.NewVectorSet()
	if len(docs) == 0 {
		return set, nil
	}

	corpus := make([]string, len(docs))
	for i, doc := range docs {
		corpus[i] = doc.Text
	}

	model, err := lexical.Fit(corpus, lp.opts...)
	if errors.Is(err, lexical.ErrEmptyVocabulary) {
		// Nothing but stop words: every document is the empty vector.
		lp.logger.Warn("corpus has no lexical features", "documents", len(docs))
		for _, doc := range docs {
			if err := set.Add(doc.Identity, core.NewSparse(nil)); err != nil {
				return nil, err
			}
		}
		return set, nil
	}
	if err != nil {
		return nil, err
	}
	lp.logger.Debug("fitted tf-idf model", "documents", len(docs), "features", model.Size())

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := set.Add(doc.Identity, model.Transform(doc.Text)); err != nil {
			return nil, err
		}
	}
	return set, nil
}
