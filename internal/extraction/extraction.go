// Package extraction recovers a structured quiz from free-form model output.
//
// Extraction never fails. Text that cannot be read as a JSON array or object
// degrades to a Fallback result carrying the raw text, bounded to
// MaxFallbackChars characters.
//
// Sub-extraction is a heuristic: it takes the span from the first '[' or '{' to
// the last matching closer in the text. Prose after the payload that contains a
// closing bracket gets swallowed into the candidate and the parse fails. That
// case ends in Fallback rather than a smarter scan.
package extraction

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"quiz-builder/internal/domain"
)

// MaxFallbackChars bounds the raw text returned on the Fallback path.
const MaxFallbackChars = 8000

var (
	fenceMarker   = regexp.MustCompile("(?i)```(?:json)?")
	jsonCandidate = regexp.MustCompile(`(\[[\s\S]*\]|\{[\s\S]*\})`)
)

// ErrNotStructured is returned when structured data is requested from a
// Fallback result.
var ErrNotStructured = errors.New("extraction: result is not structured")

type Kind int

const (
	Fallback Kind = iota
	Structured
)

func (k Kind) String() string {
	if k == Structured {
		return "structured"
	}
	return "fallback"
}

// Result is either Structured, with Value holding the parsed JSON verbatim, or
// Fallback, with Raw holding the bounded original text.
type Result struct {
	Kind  Kind
	Value json.RawMessage
	Raw   string
}

func (r Result) IsStructured() bool {
	return r.Kind == Structured
}

// Payload renders the result for the response body: two-space indented JSON
// for Structured, the raw text for Fallback.
func (r Result) Payload() string {
	if r.Kind != Structured {
		return r.Raw
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Value, "", "  "); err != nil {
		return string(r.Value)
	}
	return buf.String()
}

// Questions decodes a Structured array into quiz questions. Unknown fields
// are ignored and missing ones are left empty.
func (r Result) Questions() ([]domain.QuizQuestion, error) {
	if r.Kind != Structured {
		return nil, ErrNotStructured
	}
	var questions []domain.QuizQuestion
	if err := json.Unmarshal(r.Value, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Extract converts model output into a Result. It is pure: the same input
// always yields the same Result.
func Extract(raw string) Result {
	if raw == "" {
		return newFallback("")
	}

	cleaned := Normalize(raw)

	if value, ok := parseContainer(cleaned); ok {
		return Result{Kind: Structured, Value: value}
	}

	if candidate := jsonCandidate.FindString(cleaned); candidate != "" {
		if value, ok := parseContainer(candidate); ok {
			return Result{Kind: Structured, Value: value}
		}
	}

	return newFallback(raw)
}

// Normalize strips every fence marker (```, ```json, ```JSON ...) wherever it
// appears and trims surrounding whitespace.
func Normalize(raw string) string {
	return strings.TrimSpace(fenceMarker.ReplaceAllString(raw, ""))
}

// parseContainer accepts s only when the whole of it is a JSON array or object.
func parseContainer(s string) (json.RawMessage, bool) {
	if s == "" || (s[0] != '[' && s[0] != '{') {
		return nil, false
	}
	if !json.Valid([]byte(s)) {
		return nil, false
	}
	return json.RawMessage(s), true
}

func newFallback(raw string) Result {
	return Result{Kind: Fallback, Raw: truncate(raw, MaxFallbackChars)}
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
