package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/opsmind/opsmind/store"
)

// Config holds Manager configuration.
type Config struct {
	// RecallTopK is the number of memories fetched per recall.
	// Default: 3.
	RecallTopK int
}

// DefaultConfig returns sensible defaults.
var DefaultConfig = &Config{
	RecallTopK: 3,
}

// Manager writes conversation records to the memory collection and runs
// user-scoped similarity recall over them.
//
// Store failures propagate: a turn whose memory cannot be persisted is
// incomplete, and silently dropping records would make later recall lie.
// Recall failures degrade: the caller gets an empty result plus the
// error, and the conversation proceeds with partial context.
type Manager struct {
	col      store.Collection
	embedder Embedder
	logger   *log.Logger
	config   *Config
}

// NewManager creates a Manager over the given memory collection.
func NewManager(col store.Collection, embedder Embedder, logger *log.Logger, config *Config) *Manager {
	if config == nil {
		config = DefaultConfig
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		col:      col,
		embedder: embedder,
		logger:   logger,
		config:   config,
	}
}

// Store persists one utterance. The text is embedded, given its
// deterministic id, and upserted; storing the same (user, role, text)
// triple twice leaves exactly one record.
//
// An embedding failure is a hard failure: a record without an embedding
// is not a valid state, so nothing is written.
func (m *Manager) Store(ctx context.Context, userID, text string, role Role) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if !role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	embedding, err := m.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed memory text: %w", err)
	}
	if want := m.embedder.Dimensions(); want > 0 && len(embedding) != want {
		return fmt.Errorf("%w: embedder declared %d, produced %d", ErrDimensionMismatch, want, len(embedding))
	}

	rec := Record{
		ID:        RecordID(userID, role, text),
		UserID:    userID,
		Role:      role,
		Text:      text,
		Embedding: embedding,
		CreatedAt: time.Now(),
	}

	if err := m.col.Upsert(ctx, store.Document{
		ID:        rec.ID,
		Content:   rec.Text,
		Embedding: rec.Embedding,
		Metadata:  rec.Metadata(),
	}); err != nil {
		return fmt.Errorf("store memory record %s: %w", rec.ID, err)
	}

	m.logger.Debug("stored memory record", "id", rec.ID, "user", userID, "role", role)
	return nil
}

// Recall returns the topK memories most similar to query, newline-joined
// in rank order. Results are filtered to the given user; records written
// by other users are never returned.
//
// Recall is best-effort: on any failure it returns an empty string
// together with the error, never aborting the caller's turn. Callers that
// only care about the degraded value can ignore the error; the empty
// string with a nil error means the user genuinely has no memories yet.
func (m *Manager) Recall(ctx context.Context, userID, query string, topK int) (string, error) {
	if topK < 1 {
		topK = m.config.RecallTopK
	}

	embedding, err := m.embedder.Embed(ctx, query)
	if err != nil {
		m.logger.Warn("memory recall degraded", "user", userID, "err", err)
		return "", fmt.Errorf("embed recall query: %w", err)
	}

	hits, err := m.col.Query(ctx, embedding, topK, map[string]string{"user_id": userID})
	if err != nil {
		m.logger.Warn("memory recall degraded", "user", userID, "err", err)
		return "", fmt.Errorf("query memory: %w", err)
	}

	if len(hits) == 0 {
		return "", nil
	}

	texts := make([]string, 0, len(hits))
	for _, h := range hits {
		texts = append(texts, h.Content)
	}
	m.logger.Debug("recalled memories", "user", userID, "count", len(texts))
	return strings.Join(texts, "\n"), nil
}
