// Package memory implements the persistent, per-user semantic memory of
// the assistant.
//
// Every conversational turn produces two records (the user's query and
// the agent's answer). Records are embedded at write time and upserted
// into a vector collection, namespaced by user id so recall never
// crosses users.
//
// Architecture:
//   - Record: one stored utterance with a deterministic identity
//   - Embedder: text-to-vector conversion (Ollama local, OpenAI remote)
//   - Manager: writes records and runs user-scoped similarity recall
//
// Record identity is derived from (user id, role, text), so re-storing
// the same utterance is an idempotent overwrite rather than a duplicate
// insert. Records are never deleted here; memory is append-only.
package memory
