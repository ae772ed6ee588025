package quizgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"quiz-builder/internal/config"
	"quiz-builder/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// ErrMissingAPIKey means the provider needs a credential and none was given.
var ErrMissingAPIKey = errors.New("LLM API key is missing")

// New builds the generation collaborator for the configured provider.
func New(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (domain.QuizGenerator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	modelName := cfg.ModelName()

	var (
		model llms.Model
		err   error
	)
	switch cfg.Provider {
	case config.ProviderGemini:
		if cfg.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		model, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(modelName),
		)
	case config.ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		model, err = openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(modelName),
		)
	case config.ProviderOllama:
		httpClient := &http.Client{Timeout: cfg.Timeout}
		model, err = ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(modelName),
			ollama.WithHTTPClient(httpClient),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	logger.Info("Initialized quiz generator",
		zap.String("provider", cfg.Provider),
		zap.String("model", modelName),
	)
	gen, err := NewLLMQuizGenerator(model, modelName, cfg.Temperature, logger)
	if err != nil {
		return nil, err
	}
	return gen, nil
}
