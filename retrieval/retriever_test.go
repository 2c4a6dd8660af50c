package retrieval_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/opsmind/opsmind/memory/embedder/mock"
	"github.com/opsmind/opsmind/retrieval"
	"github.com/opsmind/opsmind/store"
)

// stubCollection returns canned hits, recording the requested topK.
type stubCollection struct {
	hits     []store.Hit
	err      error
	lastTopK int
}

func (s *stubCollection) Upsert(ctx context.Context, doc store.Document) error {
	return errors.New("static KB is read-only at query time")
}

func (s *stubCollection) Query(ctx context.Context, embedding []float32, topK int, where map[string]string) ([]store.Hit, error) {
	s.lastTopK = topK
	return s.hits, s.err
}

func (s *stubCollection) Count() int { return len(s.hits) }

func TestSearchFormatting(t *testing.T) {
	col := &stubCollection{hits: []store.Hit{
		{Document: store.Document{Content: "doc1", Metadata: map[string]string{"source": "a.md"}}},
		{Document: store.Document{Content: "doc2"}},
	}}
	r := retrieval.NewRetriever(col, mock.New(), nil, 5)

	got, err := r.Search(context.Background(), "x")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := "[Source: a.md]\ndoc1\n\n[Source: unknown]\ndoc2"
	if got != want {
		t.Errorf("formatted context mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestSearchRequestsConfiguredTopK(t *testing.T) {
	col := &stubCollection{}
	r := retrieval.NewRetriever(col, mock.New(), nil, 7)

	if _, err := r.Search(context.Background(), "query"); err != nil {
		t.Fatalf("search: %v", err)
	}
	if col.lastTopK != 7 {
		t.Errorf("want topK 7, got %d", col.lastTopK)
	}
}

func TestSearchDegradesToErrorMarker(t *testing.T) {
	col := &stubCollection{err: errors.New("index unavailable")}
	r := retrieval.NewRetriever(col, mock.New(), nil, 5)

	got, err := r.Search(context.Background(), "query")
	if err == nil {
		t.Error("search should report the underlying error")
	}
	if !strings.HasPrefix(got, "[ERROR] document search failed:") {
		t.Errorf("degraded search should return a visible marker, got %q", got)
	}
	if !strings.Contains(got, "index unavailable") {
		t.Errorf("marker should carry the cause, got %q", got)
	}
}

func TestSearchEmptyKB(t *testing.T) {
	r := retrieval.NewRetriever(&stubCollection{}, mock.New(), nil, 5)

	got, err := r.Search(context.Background(), "query")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got != "" {
		t.Errorf("empty KB should produce empty context, got %q", got)
	}
}
