package dto

// GenerateQuizRequest is the body of POST /api/generate-quiz
// @Description Parameters for a generated quiz
type GenerateQuizRequest struct {
	Topic        string `json:"topic" example:"Photosynthesis"`
	Difficulty   string `json:"difficulty" example:"Medium"`
	NumQuestions int    `json:"numQuestions" example:"5"`
}

// GenerateQuizResponse carries the quiz as a string: pretty-printed JSON when
// the model output could be parsed, the raw model text otherwise.
// @Description Generated quiz
type GenerateQuizResponse struct {
	Quiz string `json:"quiz"`
}

// HealthResponse represents the health check payload
type HealthResponse struct {
	Status           string `json:"status" example:"OK"`
	ModelInitialized bool   `json:"modelInitialized"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error  string   `json:"error"`
	Detail string   `json:"detail,omitempty"`
	Fields []string `json:"fields,omitempty"`
}
