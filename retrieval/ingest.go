package retrieval

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/opsmind/opsmind/memory"
	"github.com/opsmind/opsmind/store"
)

// Ingester builds the static KB from a directory of text documents.
type Ingester struct {
	col      store.Collection
	embedder memory.Embedder
	logger   *log.Logger
}

// NewIngester creates an Ingester writing into col.
func NewIngester(col store.Collection, embedder memory.Embedder, logger *log.Logger) *Ingester {
	if logger == nil {
		logger = log.Default()
	}
	return &Ingester{col: col, embedder: embedder, logger: logger}
}

// Ingest walks dataDir for .txt and .md files, embeds each file's
// content, and upserts it into the KB with the file path as id and its
// path relative to dataDir as the provenance source. Empty files are
// skipped. Returns the number of documents indexed.
//
// Re-running ingest over the same tree overwrites records in place; ids
// are paths, so unchanged files converge to the same entry.
func (i *Ingester) Ingest(ctx context.Context, dataDir string) (int, error) {
	indexed := 0
	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".md" {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		text := strings.TrimSpace(string(raw))
		if text == "" {
			i.logger.Debug("skipping empty file", "path", path)
			return nil
		}

		embedding, err := i.embedder.Embed(ctx, text)
		if err != nil {
			return fmt.Errorf("embed %s: %w", path, err)
		}

		source, err := filepath.Rel(dataDir, path)
		if err != nil {
			source = path
		}

		if err := i.col.Upsert(ctx, store.Document{
			ID:        path,
			Content:   text,
			Embedding: embedding,
			Metadata:  map[string]string{"source": source},
		}); err != nil {
			return fmt.Errorf("index %s: %w", path, err)
		}

		i.logger.Info("indexed document", "source", source, "bytes", len(text))
		indexed++
		return nil
	})
	if err != nil {
		return indexed, err
	}
	return indexed, nil
}
