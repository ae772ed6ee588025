package service

import (
	"fmt"

	"quiz-builder/internal/domain"
)

const quizPromptTemplate = `
You are an AI Quiz Builder. Produce exactly %d multiple-choice questions on the topic "%s" with difficulty "%s".

Rules:
- Output JSON only
- Output a single JSON array of question objects
- Each question must have:
  - question
  - options (4)
  - answer (must match one of the options exactly)
  - optional explanation
`

// BuildPrompt embeds the request parameters verbatim. Nothing is escaped: the
// text only ever reaches the model.
func BuildPrompt(req domain.QuizRequest) string {
	return fmt.Sprintf(quizPromptTemplate, req.NumQuestions, req.Topic, req.Difficulty)
}
