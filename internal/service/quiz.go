package service

import (
	"context"
	"strings"
	"time"

	"quiz-builder/internal/config"
	"quiz-builder/internal/domain"
	"quiz-builder/internal/dto"
	"quiz-builder/internal/extraction"
	"quiz-builder/internal/logger"
	"quiz-builder/internal/validation"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	ModelInitialized() bool
}

// quizService runs one generation cycle per call and keeps no state between
// calls. generator is nil when no collaborator could be configured at startup.
type quizService struct {
	generator domain.QuizGenerator
	validator *validation.Validator
	timeout   time.Duration
	extract   func(string) extraction.Result
}

// NewQuizService creates a new instance of quizService. A nil generator is
// allowed; every GenerateQuiz call then fails with GENERATOR_UNAVAILABLE.
func NewQuizService(generator domain.QuizGenerator, cfg *config.Config) QuizService {
	var timeout time.Duration
	if cfg != nil {
		timeout = cfg.LLM.Timeout
	}
	return &quizService{
		generator: generator,
		validator: validation.NewValidator(),
		timeout:   timeout,
		extract:   extraction.Extract,
	}
}

func (s *quizService) ModelInitialized() bool {
	return s.generator != nil
}

// GenerateQuiz implements QuizService
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	if errs := s.validator.ValidateGenerateQuizRequest(req); len(errs) > 0 {
		return nil, errs
	}
	if s.generator == nil {
		return nil, domain.NewGeneratorUnavailableError()
	}

	quizReq := domain.QuizRequest{
		Topic:        req.Topic,
		Difficulty:   req.Difficulty,
		NumQuestions: req.NumQuestions,
	}
	prompt := BuildPrompt(quizReq)

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	l := logger.Get().With(
		zap.String("topic", quizReq.Topic),
		zap.String("difficulty", quizReq.Difficulty),
		zap.Int("num_questions", quizReq.NumQuestions),
	)

	start := time.Now()
	text, err := s.generator.Generate(callCtx, prompt)
	if err != nil {
		l.Error("Quiz generation failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, domain.NewLLMServiceError(err)
	}
	l.Debug("Raw generator output", zap.String("raw_response", text), zap.Duration("elapsed", time.Since(start)))

	if strings.TrimSpace(text) == "" {
		l.Warn("Generator returned no text")
		return nil, domain.NewEmptyResponseError()
	}

	result := s.extract(text)
	if result.IsStructured() {
		if issues := extraction.ValidateShape(result); len(issues) > 0 {
			descriptions := make([]string, 0, len(issues))
			for _, issue := range issues {
				descriptions = append(descriptions, issue.String())
			}
			l.Warn("Structured quiz does not match the expected shape", zap.Strings("issues", descriptions))
		}
	} else {
		l.Warn("Could not extract JSON from generator output, returning raw text",
			zap.Int("raw_length", len(text)),
		)
	}

	return &dto.GenerateQuizResponse{Quiz: result.Payload()}, nil
}
