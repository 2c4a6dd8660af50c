// Package llm abstracts the text-generation backend. The assistant
// treats it as a black box: prompt in, answer (or token stream) out.
package llm

import "context"

// StreamChunk is one event on a generation stream. Delta carries a token
// fragment; the final chunk has Done set, the accumulated FullText, and
// Err if the stream terminated abnormally.
type StreamChunk struct {
	Delta    string
	Done     bool
	FullText string
	Err      error
}

// Generator is a text-completion backend.
//
// Implementations: Ollama (local daemon, NDJSON streaming) and Anthropic
// (Claude Messages API).
type Generator interface {
	// Generate returns the complete answer for prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Stream yields token fragments as they arrive. The channel is
	// closed after a terminal chunk with Done set; cancelling ctx
	// terminates the stream early with an error chunk.
	Stream(ctx context.Context, prompt string) (<-chan StreamChunk, error)
}
