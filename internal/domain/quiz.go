package domain

// QuizRequest is the validated input of one generation cycle.
type QuizRequest struct {
	Topic        string
	Difficulty   string
	NumQuestions int
}

// QuizQuestion is the structured form a generated quiz is expected to take.
// Nothing upstream enforces it; see extraction.ValidateShape.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// HasAnswerInOptions reports whether Answer matches one of Options verbatim.
func (q QuizQuestion) HasAnswerInOptions() bool {
	for _, opt := range q.Options {
		if opt == q.Answer {
			return true
		}
	}
	return false
}
