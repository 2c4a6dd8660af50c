// Package retrieval queries the static document knowledge base and
// formats matches with provenance. The KB is built offline by Ingest and
// is strictly read-only at query time.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/opsmind/opsmind/memory"
	"github.com/opsmind/opsmind/store"
)

// DefaultMaxContextDocs is the number of KB chunks pulled per query.
const DefaultMaxContextDocs = 5

// Retriever runs semantic search over the static KB collection.
type Retriever struct {
	col      store.Collection
	embedder memory.Embedder
	logger   *log.Logger
	maxDocs  int
}

// NewRetriever creates a Retriever. maxDocs <= 0 selects the default.
func NewRetriever(col store.Collection, embedder memory.Embedder, logger *log.Logger, maxDocs int) *Retriever {
	if maxDocs <= 0 {
		maxDocs = DefaultMaxContextDocs
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Retriever{
		col:      col,
		embedder: embedder,
		logger:   logger,
		maxDocs:  maxDocs,
	}
}

// Search returns the top KB chunks relevant to query, each prefixed with
// its provenance as "[Source: <source>]" ("unknown" when the chunk
// carries none), joined by blank lines in similarity rank order.
//
// Search never fails the turn: any underlying error is converted into a
// visible error marker in the returned context and also returned as a
// typed error for callers that want to tell failure from no-results.
func (r *Retriever) Search(ctx context.Context, query string) (string, error) {
	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		r.logger.Warn("doc search degraded", "err", err)
		return fmt.Sprintf("[ERROR] document search failed: %v", err), fmt.Errorf("embed doc query: %w", err)
	}

	hits, err := r.col.Query(ctx, embedding, r.maxDocs, nil)
	if err != nil {
		r.logger.Warn("doc search degraded", "err", err)
		return fmt.Sprintf("[ERROR] document search failed: %v", err), fmt.Errorf("query docs: %w", err)
	}

	blocks := make([]string, 0, len(hits))
	for _, h := range hits {
		source := h.Metadata["source"]
		if source == "" {
			source = "unknown"
		}
		blocks = append(blocks, fmt.Sprintf("[Source: %s]\n%s", source, h.Content))
	}
	return strings.Join(blocks, "\n\n"), nil
}
