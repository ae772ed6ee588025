package domain

import "context"

// QuizGenerator is the generation collaborator. It is called once per request
// and returns the model's text as-is.
type QuizGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
