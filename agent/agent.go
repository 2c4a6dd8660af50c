// Package agent orchestrates one conversational turn: rephrase the
// query, assemble context from the three memory tiers, generate an
// answer, then persist the exchange to short- and long-term memory.
package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/opsmind/opsmind/llm"
	"github.com/opsmind/opsmind/memory"
	"github.com/opsmind/opsmind/retrieval"
)

// Config holds Agent configuration.
type Config struct {
	// MemorySize is the short-term window: how many trailing turns a
	// session retains and surfaces in context. Default: 3.
	MemorySize int

	// RecallTopK is the number of long-term memories recalled per turn.
	// Default: 3.
	RecallTopK int

	// SkipRephrase disables the query-rephrasing step.
	SkipRephrase bool
}

// DefaultConfig returns sensible defaults.
var DefaultConfig = &Config{
	MemorySize: 3,
	RecallTopK: 3,
}

// Agent wires the memory manager, document retriever, and generation
// backend together. All handles are explicit; there is no ambient
// package state.
type Agent struct {
	memory    *memory.Manager
	retriever *retrieval.Retriever
	generator llm.Generator
	logger    *log.Logger
	config    *Config

	mu       sync.Mutex
	sessions map[string]*Session
}

// New creates an Agent.
func New(mem *memory.Manager, ret *retrieval.Retriever, gen llm.Generator, logger *log.Logger, config *Config) *Agent {
	if config == nil {
		config = DefaultConfig
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Agent{
		memory:    mem,
		retriever: ret,
		generator: gen,
		logger:    logger,
		config:    config,
		sessions:  make(map[string]*Session),
	}
}

// Session returns the session for userID, creating it on first use.
// Each user gets their own short-term buffer.
func (a *Agent) Session(userID string) *Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	if s, ok := a.sessions[userID]; ok {
		return s
	}
	s := newSession(userID, a.config.MemorySize)
	a.sessions[userID] = s
	a.logger.Debug("created session", "session", s.ID, "user", userID)
	return s
}

// Answer runs one full turn for userID. Token fragments are delivered to
// onToken as they arrive when onToken is non-nil; the returned string is
// always the complete answer.
//
// A generation failure does not fail the turn: the answer becomes a
// visible error string, and the exchange is still recorded. A memory
// write failure does fail the turn's bookkeeping: Answer returns the
// answer text together with a non-nil error, and the caller decides how
// loudly to surface the incomplete history.
func (a *Agent) Answer(ctx context.Context, userID, query string, onToken func(string)) (string, error) {
	s := a.Session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	refined := query
	if !a.config.SkipRephrase {
		refined = a.Rephrase(ctx, query)
	}

	composed := a.BuildContext(ctx, s, refined)
	answer := a.generate(ctx, answerPrompt(composed, refined), onToken)

	// The turn is recorded even when generation degraded to an error
	// string; history reflects what the user was shown.
	s.history.Append(Turn{Query: query, Answer: answer})

	err := errors.Join(
		a.memory.Store(ctx, userID, query, memory.RoleUser),
		a.memory.Store(ctx, userID, answer, memory.RoleAgent),
	)
	if err != nil {
		return answer, fmt.Errorf("record turn: %w", err)
	}
	return answer, nil
}

// generate runs the backend, streaming when a token callback is given.
// Failures are converted to the visible error string shown as the answer.
func (a *Agent) generate(ctx context.Context, prompt string, onToken func(string)) string {
	if onToken == nil {
		answer, err := a.generator.Generate(ctx, prompt)
		if err != nil {
			a.logger.Error("generation failed", "err", err)
			return fmt.Sprintf("[ERROR] generation failed: %v", err)
		}
		return answer
	}

	stream, err := a.generator.Stream(ctx, prompt)
	if err != nil {
		a.logger.Error("generation failed", "err", err)
		return fmt.Sprintf("[ERROR] generation failed: %v", err)
	}

	var answer string
	for chunk := range stream {
		if chunk.Delta != "" {
			onToken(chunk.Delta)
		}
		if chunk.Done {
			if chunk.Err != nil {
				a.logger.Error("generation stream failed", "err", chunk.Err)
				answer = fmt.Sprintf("[ERROR] generation failed: %v", chunk.Err)
			} else {
				answer = chunk.FullText
			}
		}
	}
	return answer
}
