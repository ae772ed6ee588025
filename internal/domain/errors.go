package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeMissingField ErrorCode = "MISSING_FIELDS"

	CodeGeneratorUnavailable ErrorCode = "GENERATOR_UNAVAILABLE"
	CodeLLMServiceError      ErrorCode = "LLM_SERVICE_ERROR"
	CodeEmptyResponse        ErrorCode = "EMPTY_RESPONSE"
)

// Messages surfaced to clients. Clients match on these strings.
const (
	MsgMissingFields        = "Missing required fields: topic, difficulty, or numQuestions"
	MsgInvalidBody          = "Invalid request body"
	MsgGeneratorUnavailable = "Gemini model not initialized. Check API key."
	MsgLLMServiceError      = "Gemini API error"
	MsgEmptyResponse        = "Empty response from Gemini model"
	MsgInternal             = "Internal server error"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Detail returns the cause's message, or "" when there is none.
func (e *DomainError) Detail() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewInvalidInputError(message string, err error) *DomainError {
	return NewError(CodeInvalidInput, message, err)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewGeneratorUnavailableError() *DomainError {
	return NewError(CodeGeneratorUnavailable, MsgGeneratorUnavailable, nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(CodeLLMServiceError, MsgLLMServiceError, err)
}

func NewEmptyResponseError() *DomainError {
	return NewError(CodeEmptyResponse, MsgEmptyResponse, nil)
}

// ValidationError describes one rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

// ValidationErrors collects every field problem found in a request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Fields lists the offending field names in order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, e := range v {
		fields = append(fields, e.Field)
	}
	return fields
}
