package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/overlap/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestIdentityFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected core.Identity
	}{
		{"Team Falcon.pdf", "Falcon"},
		{"/tmp/Submission Owls final.pdf", "Owls"},
		{"report.txt", "report"},
		{"notes.md", "notes"},
		{"Team  Gap.pdf", "Team  Gap"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, IdentityFromPath(tt.path))
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Team Zebra.txt", "Zebras graze on the savanna.")
	writeFile(t, dir, "Team Alpha.md", "# Alpha\n\nRockets need fuel.")
	writeFile(t, dir, "image.png", "not a document")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Team Sub.txt"), 0o755))

	docs, err := LoadDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, core.Identity("Alpha"), docs[0].Identity)
	assert.Equal(t, core.Identity("Zebra"), docs[1].Identity)
	assert.Equal(t, "Zebras graze on the savanna.", docs[1].Text)
	assert.Equal(t, filepath.Join(dir, "Team Zebra.txt"), docs[1].Path)
	assert.Equal(t, core.DigestOf(docs[1].Text), docs[1].Digest)
}

func TestLoadDirectory_SkipsEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Team A.txt", "content")
	writeFile(t, dir, "Team B.txt", "   \n\t")

	docs, err := LoadDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, core.Identity("A"), docs[0].Identity)
}

func TestLoadDirectory_DuplicateIdentity(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Team A.txt", "one")
	writeFile(t, dir, "Group A.md", "two")

	_, err := LoadDirectory(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrDuplicateIdentity))
}

func TestLoadDirectory_Errors(t *testing.T) {
	_, err := LoadDirectory(context.Background(), "")
	assert.True(t, errors.Is(err, ErrDirectoryRequired))

	_, err = LoadDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	dir := t.TempDir()
	writeFile(t, dir, "Team Broken.pdf", "this is not a pdf")
	_, err = LoadDirectory(context.Background(), dir)
	assert.Error(t, err)
}

func TestLoadDirectory_Canceled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Team A.txt", "content")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadDirectory(ctx, dir)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoadFile_Unsupported(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sheet.csv", "a,b")

	_, err := LoadFile(context.Background(), filepath.Join(dir, "sheet.csv"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
