package quizgen

import (
	"context"
	"errors"
	"fmt"

	"quiz-builder/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// LLMQuizGenerator implements domain.QuizGenerator on top of any langchaingo
// model. One Generate call is one model request; nothing is retried.
type LLMQuizGenerator struct {
	model       llms.Model
	modelName   string
	temperature float64
	logger      *zap.Logger
}

// NewLLMQuizGenerator wraps an initialised langchaingo model.
func NewLLMQuizGenerator(model llms.Model, modelName string, temperature float64, logger *zap.Logger) (*LLMQuizGenerator, error) {
	if model == nil {
		return nil, fmt.Errorf("LLM model cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMQuizGenerator{
		model:       model,
		modelName:   modelName,
		temperature: temperature,
		logger:      logger,
	}, nil
}

// Generate sends the prompt as a single human message and returns the text of
// the first non-empty choice.
func (g *LLMQuizGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := g.model.GenerateContent(ctx, messages, llms.WithTemperature(g.temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			g.logger.Error("LLM request timed out", zap.String("model", g.modelName), zap.Error(err))
			return "", fmt.Errorf("LLM request timed out: %w", err)
		}
		g.logger.Error("Failed to get response from LLM", zap.String("model", g.modelName), zap.Error(err))
		return "", fmt.Errorf("LLM call failed: %w", err)
	}

	text := ResponseText(resp)
	g.logger.Debug("LLM response received",
		zap.String("model", g.modelName),
		zap.Int("choices", choiceCount(resp)),
		zap.Int("text_length", len(text)),
	)
	return text, nil
}

func choiceCount(resp *llms.ContentResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Choices)
}

var _ domain.QuizGenerator = (*LLMQuizGenerator)(nil)
