package ingestion

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChunker_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		size, overlap int
	}{
		{"zero size", 0, 0},
		{"negative overlap", 10, -1},
		{"overlap equals size", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChunker(tt.size, tt.overlap)
			assert.True(t, errors.Is(err, ErrInvalidChunking))
		})
	}
}

func TestChunker_ShortText(t *testing.T) {
	c, err := NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	require.NoError(t, err)

	chunks, err := c.Split("hello world")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello world"}, chunks)
}

func TestChunker_LongText(t *testing.T) {
	c, err := NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	require.NoError(t, err)

	sentence := "Solar panels convert sunlight into electricity for the grid. "
	text := strings.Repeat(sentence, 40)

	chunks, err := c.Split(text)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), DefaultChunkSize)
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestChunker_Fingerprint(t *testing.T) {
	c, err := NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	require.NoError(t, err)
	assert.Equal(t, "256/64", c.Fingerprint())

	other, err := NewChunker(128, 0)
	require.NoError(t, err)
	assert.NotEqual(t, c.Fingerprint(), other.Fingerprint())
	assert.Equal(t, "m@256/64", cacheNamespace("m", c))
}

func TestChunker_Blank(t *testing.T) {
	c, err := NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	require.NoError(t, err)

	chunks, err := c.Split("  \n\n  ")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
