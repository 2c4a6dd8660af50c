package memory

import (
	"context"
	"errors"
)

// ErrEmptyText is returned by Manager.Store for empty input. A record
// with no text has no useful embedding and no stable identity.
var ErrEmptyText = errors.New("memory: empty text")

// ErrInvalidRole is returned by Manager.Store for roles outside
// {user, agent}.
var ErrInvalidRole = errors.New("memory: invalid role")

// ErrDimensionMismatch is returned by Manager.Store when an embedder
// produces a vector whose length disagrees with its declared
// Dimensions. Mixed-dimension vectors in one collection would corrupt
// similarity ranking.
var ErrDimensionMismatch = errors.New("memory: embedding dimension mismatch")

// Embedder converts text to a fixed-dimension vector. Implementations
// must be deterministic: identical input yields an identical vector.
//
// Implementations: ollama (local daemon), openai (remote API),
// mock (tests), cached (wrapper, memoizes any of the above).
type Embedder interface {
	// Embed converts a single text to an embedding vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}
