package retrieval_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/opsmind/opsmind/memory/embedder/mock"
	"github.com/opsmind/opsmind/retrieval"
	"github.com/opsmind/opsmind/store/chromem"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIngestIndexesTextAndMarkdown(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "nginx.md", "# Restarting nginx\nsystemctl restart nginx")
	writeFile(t, dir, "runbooks/disk.txt", "Check df -h when disk alerts fire")
	writeFile(t, dir, "ignored.json", `{"not": "indexed"}`)
	writeFile(t, dir, "empty.md", "   \n  ")

	col, err := chromem.NewInMemory().EnsureCollection("kb")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}

	n, err := retrieval.NewIngester(col, mock.New(), nil).Ingest(ctx, dir)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if n != 2 {
		t.Errorf("want 2 indexed documents, got %d", n)
	}
	if got := col.Count(); got != 2 {
		t.Errorf("want 2 documents in KB, got %d", got)
	}
}

func TestIngestSetsRelativeSource(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "runbooks/disk.txt", "Check df -h when disk alerts fire")

	col, err := chromem.NewInMemory().EnsureCollection("kb")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if _, err := retrieval.NewIngester(col, mock.New(), nil).Ingest(ctx, dir); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	emb, err := mock.New().Embed(ctx, "Check df -h when disk alerts fire")
	if err != nil {
		t.Fatal(err)
	}
	hits, err := col.Query(ctx, emb, 1, nil)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("want 1 hit, got %d", len(hits))
	}
	if got := hits[0].Metadata["source"]; got != filepath.Join("runbooks", "disk.txt") {
		t.Errorf("want relative source path, got %q", got)
	}
}

func TestIngestIsRerunnable(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, dir, "doc.md", "stable content")

	col, err := chromem.NewInMemory().EnsureCollection("kb")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	ing := retrieval.NewIngester(col, mock.New(), nil)

	for i := 0; i < 2; i++ {
		if _, err := ing.Ingest(ctx, dir); err != nil {
			t.Fatalf("ingest #%d: %v", i+1, err)
		}
	}
	if got := col.Count(); got != 1 {
		t.Errorf("re-running ingest should overwrite, got %d documents", got)
	}
}
