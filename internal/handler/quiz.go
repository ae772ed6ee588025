package handler

import (
	"strings"

	"quiz-builder/internal/domain"
	"quiz-builder/internal/dto"
	"quiz-builder/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// Health godoc
// @Summary Health check
// @Description Reports liveness and whether the quiz generator was configured at startup
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:           "OK",
		ModelInitialized: h.service.ModelInitialized(),
	})
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Asks the generator for multiple-choice questions. The quiz field holds pretty-printed JSON when the output could be parsed, otherwise the raw model text.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Quiz parameters"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /generate-quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	// Only JSON bodies are parsed. An empty or non-JSON body is treated like an
	// empty object so it reports the missing fields instead of a parse failure.
	if len(c.Body()) > 0 && isJSON(c) {
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError(domain.MsgInvalidBody, err)
		}
	}

	resp, err := h.service.GenerateQuiz(c.UserContext(), &req)
	if err != nil {
		return err // This will be handled by ErrorHandler middleware
	}

	return c.JSON(resp)
}

func isJSON(c *fiber.Ctx) bool {
	contentType := strings.ToLower(string(c.Request().Header.ContentType()))
	return strings.HasPrefix(contentType, fiber.MIMEApplicationJSON)
}
