package commands

import (
	"context"
	"strings"
	"testing"
)

// canned streams its answer word by word; silent returns the answer
// without invoking the token callback, like a turn whose stream setup
// failed and degraded to an error string.
type canned struct {
	answer string
	stream bool
}

func (c canned) Answer(ctx context.Context, userID, query string, onToken func(string)) (string, error) {
	if c.stream && onToken != nil {
		for _, w := range strings.SplitAfter(c.answer, " ") {
			onToken(w)
		}
	}
	return c.answer, nil
}

func TestRunTurnStreamsTokens(t *testing.T) {
	var out strings.Builder
	err := runTurn(context.Background(), canned{answer: "Run systemctl restart nginx", stream: true}, &out, "local", "restart nginx")
	if err != nil {
		t.Fatalf("runTurn: %v", err)
	}
	if got := out.String(); got != "Agent: Run systemctl restart nginx\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestRunTurnPrintsUnstreamedAnswer(t *testing.T) {
	var out strings.Builder
	err := runTurn(context.Background(), canned{answer: "[ERROR] generation failed: daemon unreachable"}, &out, "local", "restart nginx")
	if err != nil {
		t.Fatalf("runTurn: %v", err)
	}
	if got := out.String(); !strings.Contains(got, "[ERROR] generation failed: daemon unreachable") {
		t.Errorf("unstreamed answer should be printed, got %q", got)
	}
}
