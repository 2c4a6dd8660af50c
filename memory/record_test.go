package memory

import (
	"strings"
	"testing"
)

func TestRecordIDDeterminism(t *testing.T) {
	a := RecordID("onkar", RoleUser, "how do I restart nginx?")
	b := RecordID("onkar", RoleUser, "how do I restart nginx?")
	if a != b {
		t.Errorf("same triple produced different ids: %s vs %s", a, b)
	}
}

func TestRecordIDShape(t *testing.T) {
	id := RecordID("alice", RoleAgent, "some answer")
	if !strings.HasPrefix(id, "alice_agent_") {
		t.Errorf("id %q missing user/role prefix", id)
	}
	suffix := strings.TrimPrefix(id, "alice_agent_")
	if len(suffix) != 8 {
		t.Errorf("hash prefix should be 8 hex chars, got %q", suffix)
	}
}

func TestRecordIDVariesPerTriple(t *testing.T) {
	base := RecordID("alice", RoleUser, "text")
	if RecordID("bob", RoleUser, "text") == base {
		t.Error("different users should produce different ids")
	}
	if RecordID("alice", RoleAgent, "text") == base {
		t.Error("different roles should produce different ids")
	}
	if RecordID("alice", RoleUser, "other text") == base {
		t.Error("different texts should produce different ids")
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleUser.Valid() || !RoleAgent.Valid() {
		t.Error("user and agent roles should be valid")
	}
	if Role("system").Valid() {
		t.Error("unknown role should be invalid")
	}
}
