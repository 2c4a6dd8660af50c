package memory

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// Role tags which conversational party produced a stored utterance.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAgent
}

// Record is one utterance persisted to long-term memory.
type Record struct {
	ID        string
	UserID    string
	Role      Role
	Text      string
	Embedding []float32
	CreatedAt time.Time
}

// RecordID derives the deterministic identity of a record from its
// (user, role, text) triple: the user id, the role, and the first 8 hex
// characters of the MD5 of the text. Identical triples always map to the
// same id, which makes Store an idempotent upsert.
func RecordID(userID string, role Role, text string) string {
	sum := md5.Sum([]byte(text))
	return fmt.Sprintf("%s_%s_%s", userID, role, hex.EncodeToString(sum[:])[:8])
}

// Metadata returns the record's stored metadata. The timestamp is kept
// for observability only; nothing orders or evicts on it.
func (r Record) Metadata() map[string]string {
	return map[string]string{
		"user_id":   r.UserID,
		"role":      string(r.Role),
		"timestamp": r.CreatedAt.Format(time.RFC3339),
	}
}
