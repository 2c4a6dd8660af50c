package agent

import "fmt"

const rephrasePrefix = "Rephrase this for clarity: "

const answerTemplate = `You are a DevOps expert assistant.
Use the provided context (memory + docs) to give accurate, step-by-step answers.
If context is missing, answer with your own knowledge.

Context:
%s

User question:
%s

Answer clearly:`

func answerPrompt(context, question string) string {
	return fmt.Sprintf(answerTemplate, context, question)
}
