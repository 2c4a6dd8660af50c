package agent

import (
	"context"
	"strings"
)

// Rephrase asks the generator to restate a query for clarity. Prompts
// shorter than three words are returned unchanged without contacting the
// backend. Rephrasing is best-effort: any failure or empty response
// falls back to the original prompt.
func (a *Agent) Rephrase(ctx context.Context, prompt string) string {
	if len(strings.Fields(prompt)) < 3 {
		return prompt
	}

	refined, err := a.generator.Generate(ctx, rephrasePrefix+prompt)
	if err != nil {
		a.logger.Warn("rephrase degraded, using original query", "err", err)
		return prompt
	}
	refined = strings.TrimSpace(refined)
	if refined == "" {
		return prompt
	}
	return refined
}
