package cached

import (
	"context"
	"testing"

	"github.com/opsmind/opsmind/memory/embedder/mock"
)

// countingEmbedder counts how often the inner provider is reached.
type countingEmbedder struct {
	inner *mock.Embedder
	calls int
}

func (c *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	return c.inner.Embed(ctx, text)
}

func (c *countingEmbedder) Dimensions() int { return c.inner.Dimensions() }

func TestCacheAvoidsRepeatEmbeds(t *testing.T) {
	ctx := context.Background()
	counting := &countingEmbedder{inner: mock.New()}
	emb, err := New(counting, 128)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer emb.Close()

	first, err := emb.Embed(ctx, "restart nginx")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	// ristretto admits entries asynchronously.
	emb.cache.Wait()

	second, err := emb.Embed(ctx, "restart nginx")
	if err != nil {
		t.Fatalf("embed again: %v", err)
	}

	if counting.calls != 1 {
		t.Errorf("identical input should hit the cache, inner called %d times", counting.calls)
	}
	if len(first) != len(second) {
		t.Fatalf("vector length changed between calls")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("cached vector differs at %d", i)
		}
	}
}

func TestCacheMissesDistinctInput(t *testing.T) {
	ctx := context.Background()
	counting := &countingEmbedder{inner: mock.New()}
	emb, err := New(counting, 128)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer emb.Close()

	if _, err := emb.Embed(ctx, "one"); err != nil {
		t.Fatal(err)
	}
	if _, err := emb.Embed(ctx, "two"); err != nil {
		t.Fatal(err)
	}
	if counting.calls != 2 {
		t.Errorf("distinct inputs should each reach the inner embedder, got %d calls", counting.calls)
	}
}
