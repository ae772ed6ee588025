package validation

import (
	"strings"

	"quiz-builder/internal/domain"
	"quiz-builder/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest requires a topic, a difficulty and a positive
// question count. Difficulty is free-form and is not checked against a list.
func (v *Validator) ValidateGenerateQuizRequest(req *dto.GenerateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req == nil {
		req = &dto.GenerateQuizRequest{}
	}

	if strings.TrimSpace(req.Topic) == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	}
	if strings.TrimSpace(req.Difficulty) == "" {
		errors = append(errors, domain.NewMissingFieldError("difficulty"))
	}
	if req.NumQuestions <= 0 {
		errors = append(errors, domain.NewMissingFieldError("numQuestions"))
	}

	return errors
}
