package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/poiesic/overlap/core"
	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
)

// pageSeparator joins the pages of a PDF. It is the first separator the
// chunker tries, so chunks rarely straddle a page break.
const pageSeparator = "\n\n"

// SupportedExtensions lists the file extensions LoadDirectory reads.
var SupportedExtensions = []string{".pdf", ".txt", ".md"}

// IdentityFromPath derives a document identity from its file name.
// Submissions are named "<prefix> <identity> ...", so the second
// space-separated token of the stem is used. A stem without one is used whole.
func IdentityFromPath(path string) core.Identity {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(stem, " ")
	if len(parts) > 1 && parts[1] != "" {
		return core.Identity(parts[1])
	}
	return core.Identity(stem)
}

// LoadDirectory reads every supported file directly inside dir, in file name
// order. Files with no text are skipped with a warning. Two files that map to
// the same identity are an error.
func LoadDirectory(ctx context.Context, dir string) ([]*core.Document, error) {
	if dir == "" {
		return nil, ErrDirectoryRequired
	}
	logger := slog.Default().With("component", "loader", "dir", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !supported(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)

	docs := make([]*core.Document, 0, len(names))
	seen := make(map[core.Identity]string, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(dir, name)
		text, err := LoadFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		if strings.TrimSpace(text) == "" {
			logger.Warn("skipping document without text", "file", name)
			continue
		}

		id := IdentityFromPath(name)
		if other, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %q from %s and %s", core.ErrDuplicateIdentity, id, other, name)
		}
		seen[id] = name

		docs = append(docs, core.NewDocument(id, path, text))
		logger.Debug("loaded document", "file", name, "identity", id, "length", len(text))
	}

	logger.Info("loaded documents", "count", len(docs))
	return docs, nil
}

// LoadFile returns the plain text of one PDF, text or markdown file.
func LoadFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var pages []schema.Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		info, err := f.Stat()
		if err != nil {
			return "", err
		}
		pages, err = documentloaders.NewPDF(f, info.Size()).Load(ctx)
		if err != nil {
			return "", err
		}
	case ".txt", ".md":
		pages, err = documentloaders.NewText(f).Load(ctx)
		if err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	texts := make([]string, len(pages))
	for i, page := range pages {
		texts[i] = page.PageContent
	}
	return strings.Join(texts, pageSeparator), nil
}

func supported(name string) bool {
	return slices.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(name)))
}
