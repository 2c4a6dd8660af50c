// Package ollama embeds text through a local Ollama daemon.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	api "github.com/ollama/ollama/api"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "nomic-embed-text"

// Embedder calls the Ollama embed API.
type Embedder struct {
	client     *api.Client
	model      string
	dimensions int
}

// New creates an Ollama embedder against the given host
// (e.g. "http://localhost:11434").
func New(host, model string, dimensions int) (*Embedder, error) {
	if model == "" {
		model = DefaultModel
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	httpClient := &http.Client{Timeout: 60 * time.Second}

	return &Embedder{
		client:     api.NewClient(u, httpClient),
		model:      model,
		dimensions: dimensions,
	}, nil
}

// Embed converts a single text to an embedding vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Embed(ctx, &api.EmbedRequest{
		Model: e.model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0]) == 0 {
		return nil, fmt.Errorf("ollama embed: no embedding returned for model %s", e.model)
	}
	return resp.Embeddings[0], nil
}

// Dimensions returns the configured embedding size.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}
