package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigestOf(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "same content produces same digest", content: "test content"},
		{name: "empty string", content: ""},
		{name: "long content", content: "This is a much longer piece of content that should still hash consistently"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, DigestOf(tt.content), DigestOf(tt.content))
		})
	}
}

func TestDigestOf_Different(t *testing.T) {
	assert.NotEqual(t, DigestOf("content1"), DigestOf("content2"))
}

func TestDigest_String(t *testing.T) {
	s := DigestOf("hello").String()
	assert.Len(t, s, 32)
	assert.Regexp(t, "^[0-9a-f]+$", s)
}

func TestNewPairKey_Canonical(t *testing.T) {
	tests := []struct {
		name string
		a, b Identity
	}{
		{name: "already ordered", a: "Alpha", b: "Beta"},
		{name: "reversed", a: "Beta", b: "Alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewPairKey(tt.a, tt.b)
			assert.Equal(t, Identity("Alpha"), key.First)
			assert.Equal(t, Identity("Beta"), key.Second)
		})
	}

	assert.Equal(t, NewPairKey("A", "B"), NewPairKey("B", "A"))
}

func TestPairKey_String(t *testing.T) {
	assert.Equal(t, "A and C", NewPairKey("C", "A").String())
}

func TestPairKey_Contains(t *testing.T) {
	key := NewPairKey("A", "B")
	assert.True(t, key.Contains("A"))
	assert.True(t, key.Contains("B"))
	assert.False(t, key.Contains("C"))
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument("Ravens", "/tmp/Team Ravens.pdf", "body text")
	assert.Equal(t, Identity("Ravens"), doc.Identity)
	assert.Equal(t, DigestOf("body text"), doc.Digest)
}

func TestDigest_IsZero(t *testing.T) {
	var d Digest
	assert.True(t, d.IsZero())
	assert.False(t, DigestOf("").IsZero())
}
