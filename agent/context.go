package agent

import (
	"context"
	"fmt"
	"strings"
)

// BuildContext merges the three memory tiers into one composed block
// with fixed section order: the session's short-term turn window,
// long-term semantic recall, then document search results.
//
// It is pure aggregation: degraded tiers (failed recall, failed doc
// search) contribute an empty section or a visible error marker, and the
// turn proceeds with partial context. No size cap is applied beyond the
// window and top-k constants.
func (a *Agent) BuildContext(ctx context.Context, s *Session, query string) string {
	pairs := make([]string, 0, s.history.Len())
	for _, t := range s.history.Window() {
		pairs = append(pairs, fmt.Sprintf("User: %s\nAgent: %s", t.Query, t.Answer))
	}
	shortTerm := strings.Join(pairs, "\n")

	// Recall logs its own warning on failure and hands back "".
	longTerm, _ := a.memory.Recall(ctx, s.UserID, query, a.config.RecallTopK)

	// Search embeds its error marker in the returned text.
	docs, _ := a.retriever.Search(ctx, query)

	return fmt.Sprintf("Short-term:\n%s\n\nLong-term memory:\n%s\n\nDocs:\n%s", shortTerm, longTerm, docs)
}
