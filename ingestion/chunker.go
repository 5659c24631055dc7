package ingestion

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// DefaultChunkSize is the maximum chunk length in characters.
	DefaultChunkSize = 256

	// DefaultChunkOverlap is how many characters consecutive chunks share.
	DefaultChunkOverlap = 64
)

// DefaultSeparators are tried in order, from paragraph breaks down to single
// characters.
var DefaultSeparators = []string{"\n\n", "\n", ". ", "! ", "? ", " ", ""}

// Chunker splits document text into overlapping chunks for embedding.
type Chunker struct {
	splitter textsplitter.RecursiveCharacter
	size     int
	overlap  int
}

// NewChunker creates a recursive character chunker.
func NewChunker(size, overlap int) (*Chunker, error) {
	if size < 1 || overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: size %d, overlap %d", ErrInvalidChunking, size, overlap)
	}
	return &Chunker{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(size),
			textsplitter.WithChunkOverlap(overlap),
			textsplitter.WithSeparators(DefaultSeparators),
			textsplitter.WithKeepSeparator(true),
		),
		size:    size,
		overlap: overlap,
	}, nil
}

// Fingerprint identifies the chunking parameters, e.g. "256/64". Vectors
// pooled under different chunking are not interchangeable.
func (c *Chunker) Fingerprint() string {
	return fmt.Sprintf("%d/%d", c.size, c.overlap)
}

// Split returns the non-blank chunks of text.
func (c *Chunker) Split(text string) ([]string, error) {
	chunks, err := c.splitter.SplitText(text)
	if err != nil {
		return nil, err
	}
	out := chunks[:0]
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) != "" {
			out = append(out, chunk)
		}
	}
	return out, nil
}
