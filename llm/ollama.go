package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	api "github.com/ollama/ollama/api"
)

// OllamaConfig configures the Ollama generator.
type OllamaConfig struct {
	// Host is the daemon address, e.g. "http://localhost:11434".
	Host string

	// Model is the model name, e.g. "llama3".
	Model string
}

// Ollama generates answers through a local Ollama daemon.
type Ollama struct {
	client *api.Client
	model  string
}

// generation options tuned for step-by-step operational answers
var ollamaOptions = map[string]any{
	"temperature": 0.6,
	"num_predict": 512,
	"top_k":       30,
}

// NewOllama creates an Ollama generator.
func NewOllama(cfg OllamaConfig) (*Ollama, error) {
	if cfg.Host == "" {
		cfg.Host = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3"
	}
	u, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", cfg.Host, err)
	}
	httpClient := &http.Client{Timeout: 5 * time.Minute}

	return &Ollama{
		client: api.NewClient(u, httpClient),
		model:  cfg.Model,
	}, nil
}

// Generate returns the complete answer, draining the response stream
// before returning.
func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	var text strings.Builder

	req := &api.GenerateRequest{
		Model:   o.model,
		Prompt:  prompt,
		Options: ollamaOptions,
	}
	err := o.client.Generate(ctx, req, func(gr api.GenerateResponse) error {
		text.WriteString(gr.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return strings.TrimSpace(text.String()), nil
}

// Stream yields token fragments as the daemon produces them.
func (o *Ollama) Stream(ctx context.Context, prompt string) (<-chan StreamChunk, error) {
	req := &api.GenerateRequest{
		Model:   o.model,
		Prompt:  prompt,
		Options: ollamaOptions,
	}

	ch := make(chan StreamChunk, 16)
	go func() {
		defer close(ch)
		var sb strings.Builder
		err := o.client.Generate(ctx, req, func(gr api.GenerateResponse) error {
			if gr.Response != "" {
				sb.WriteString(gr.Response)
				select {
				case ch <- StreamChunk{Delta: gr.Response}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
		if err != nil {
			ch <- StreamChunk{Done: true, FullText: sb.String(), Err: fmt.Errorf("ollama stream: %w", err)}
			return
		}
		ch <- StreamChunk{Done: true, FullText: strings.TrimSpace(sb.String())}
	}()

	return ch, nil
}
