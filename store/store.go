// Package store defines the vector storage capability consumed by the
// memory manager and the document retriever.
//
// The contract is deliberately small:
//   - Upsert is idempotent by document id.
//   - Query returns nearest neighbors ranked by similarity, optionally
//     filtered by metadata equality.
//   - Collections are named; a collection must exist before it can be
//     queried.
//
// Implementations: chromem (embedded, persistent) under store/chromem.
package store

import (
	"context"
	"errors"
)

// ErrCollectionNotFound is returned by DB.Collection when the named
// collection does not exist in the underlying store.
var ErrCollectionNotFound = errors.New("store: collection not found")

// Document is one stored entry: text plus its embedding and metadata.
// The embedding is always provided by the caller; the store never
// computes embeddings itself.
type Document struct {
	ID        string
	Content   string
	Embedding []float32
	Metadata  map[string]string
}

// Hit is a query result: the matched document and its similarity to the
// query vector (higher is closer).
type Hit struct {
	Document
	Similarity float32
}

// Collection is a handle to one named set of documents.
type Collection interface {
	// Upsert writes a document, overwriting any existing document with
	// the same id.
	Upsert(ctx context.Context, doc Document) error

	// Query returns up to topK nearest neighbors of embedding, ranked by
	// descending similarity. A non-nil where map restricts results to
	// documents whose metadata matches every key/value pair.
	Query(ctx context.Context, embedding []float32, topK int, where map[string]string) ([]Hit, error)

	// Count reports the number of documents in the collection.
	Count() int
}

// DB is a handle to the vector database holding named collections.
type DB interface {
	// Collection returns an existing collection or ErrCollectionNotFound.
	Collection(name string) (Collection, error)

	// EnsureCollection returns the named collection, creating it if it
	// does not exist yet.
	EnsureCollection(name string) (Collection, error)

	// Close releases resources.
	Close() error
}
