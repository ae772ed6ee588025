package extraction

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const quizSchema = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["question", "options", "answer"],
    "properties": {
      "question": {"type": "string", "minLength": 1},
      "options": {
        "type": "array",
        "items": {"type": "string"},
        "minItems": 4,
        "maxItems": 4
      },
      "answer": {"type": "string", "minLength": 1},
      "explanation": {"type": "string"}
    }
  }
}`

var compiledQuizSchema = mustCompileSchema(quizSchema)

// ShapeIssue is one way a Structured result deviates from the quiz shape.
type ShapeIssue struct {
	Field       string
	Description string
}

func (i ShapeIssue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Description)
}

// ValidateShape checks a result against the quiz contract: a non-empty array
// of questions with four string options and an answer taken verbatim from
// them. It only reports; the result itself is never modified. A nil slice
// means the shape is valid.
func ValidateShape(r Result) []ShapeIssue {
	if r.Kind != Structured {
		return []ShapeIssue{{Field: "(root)", Description: "response is not structured JSON"}}
	}

	res, err := compiledQuizSchema.Validate(gojsonschema.NewBytesLoader(r.Value))
	if err != nil {
		return []ShapeIssue{{Field: "(root)", Description: err.Error()}}
	}
	if !res.Valid() {
		issues := make([]ShapeIssue, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			issues = append(issues, ShapeIssue{Field: e.Field(), Description: e.Description()})
		}
		return issues
	}

	questions, err := r.Questions()
	if err != nil {
		return []ShapeIssue{{Field: "(root)", Description: err.Error()}}
	}

	var issues []ShapeIssue
	for i, q := range questions {
		if !q.HasAnswerInOptions() {
			issues = append(issues, ShapeIssue{
				Field:       fmt.Sprintf("%d.answer", i),
				Description: "answer does not match any option",
			})
		}
	}
	return issues
}

func mustCompileSchema(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("extraction: invalid quiz schema: %v", err))
	}
	return s
}
