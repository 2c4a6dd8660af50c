// Package chromem implements the store contract on top of
// philippgille/chromem-go, an embedded, pure-Go vector database.
//
// One persistent chromem database directory holds every collection: the
// pre-built knowledge base and the dynamic conversation memory live side
// by side, mirroring the single ChromaDB directory the agent persists to.
package chromem

import (
	"context"
	"fmt"
	"strings"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"github.com/opsmind/opsmind/store"
)

// DB wraps a persistent chromem database.
type DB struct {
	db *chromem.DB

	mu          sync.Mutex
	collections map[string]*collection
}

// Open opens (or creates) a persistent chromem database at path.
func Open(path string) (*DB, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("open chromem db at %s: %w", path, err)
	}
	return &DB{
		db:          db,
		collections: make(map[string]*collection),
	}, nil
}

// NewInMemory creates an ephemeral database. Used in tests and anywhere
// persistence across restarts is not wanted.
func NewInMemory() *DB {
	return &DB{
		db:          chromem.NewDB(),
		collections: make(map[string]*collection),
	}
}

// Collection returns an existing collection. A missing collection is
// reported as store.ErrCollectionNotFound so callers can decide whether
// that is fatal (static KB) or a reason to create it (memory).
func (d *DB) Collection(name string) (store.Collection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if col, ok := d.collections[name]; ok {
		return col, nil
	}
	c := d.db.GetCollection(name, nil)
	if c == nil {
		return nil, fmt.Errorf("%w: %s", store.ErrCollectionNotFound, name)
	}
	col := &collection{col: c}
	d.collections[name] = col
	return col, nil
}

// EnsureCollection returns the named collection, creating it on first use.
func (d *DB) EnsureCollection(name string) (store.Collection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if col, ok := d.collections[name]; ok {
		return col, nil
	}
	c, err := d.db.GetOrCreateCollection(name, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("ensure collection %s: %w", name, err)
	}
	col := &collection{col: c}
	d.collections[name] = col
	return col, nil
}

// Close releases resources. chromem keeps its working set in memory and
// flushes writes as they happen, so there is nothing to tear down.
func (d *DB) Close() error {
	return nil
}

type collection struct {
	col *chromem.Collection
}

// Upsert writes a document. chromem keys documents by id, so re-adding
// the same id replaces the previous entry.
func (c *collection) Upsert(ctx context.Context, doc store.Document) error {
	err := c.col.AddDocument(ctx, chromem.Document{
		ID:        doc.ID,
		Content:   doc.Content,
		Embedding: doc.Embedding,
		Metadata:  doc.Metadata,
	})
	if err != nil {
		return fmt.Errorf("add document %s: %w", doc.ID, err)
	}
	return nil
}

// Query runs a nearest-neighbor search. chromem rejects result counts
// exceeding the number of (filter-matching) documents, so the limit is
// clamped to the collection size and then walked down on the remaining
// not-enough-documents errors; an empty collection yields no hits.
func (c *collection) Query(ctx context.Context, embedding []float32, topK int, where map[string]string) ([]store.Hit, error) {
	if topK < 1 {
		return nil, fmt.Errorf("topK must be >= 1, got %d", topK)
	}
	if n := c.col.Count(); n < topK {
		if n == 0 {
			return nil, nil
		}
		topK = n
	}

	var results []chromem.Result
	for limit := topK; limit >= 1; limit-- {
		var err error
		results, err = c.col.QueryEmbedding(ctx, embedding, limit, where, nil)
		if err == nil {
			break
		}
		if isInsufficientDocsError(err) {
			if limit == 1 {
				return nil, nil
			}
			continue
		}
		return nil, fmt.Errorf("query embedding: %w", err)
	}

	hits := make([]store.Hit, 0, len(results))
	for _, r := range results {
		hits = append(hits, store.Hit{
			Document: store.Document{
				ID:        r.ID,
				Content:   r.Content,
				Embedding: r.Embedding,
				Metadata:  r.Metadata,
			},
			Similarity: r.Similarity,
		})
	}
	return hits, nil
}

func (c *collection) Count() int {
	return c.col.Count()
}

// isInsufficientDocsError matches chromem's error for a result count
// exceeding the number of queryable documents.
func isInsufficientDocsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "nResults must be") || strings.Contains(msg, "number of documents")
}
