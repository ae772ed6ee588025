package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quiz-builder/internal/adapter/quizgen"
	"quiz-builder/internal/config"
	"quiz-builder/internal/domain"
	"quiz-builder/internal/dto"
	"quiz-builder/internal/middleware"
	"quiz-builder/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type stubGenerator struct {
	text string
}

func (s stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.text, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:         5001,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			BodyLimit:    1024,
			AllowOrigins: "*",
		},
		LLM: config.LLMConfig{Provider: config.ProviderGemini, Timeout: time.Second},
	}
}

func TestNewApp_Routes(t *testing.T) {
	app := newApp(testConfig(), service.NewQuizService(stubGenerator{text: `[{"question":"Q","options":["A","B","C","D"],"answer":"D"}]`}, testConfig()))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
	var health dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.True(t, health.ModelInitialized)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-quiz", strings.NewReader(`{"topic":"Go","difficulty":"Hard","numQuestions":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewApp_BodyLimit(t *testing.T) {
	app := newApp(testConfig(), service.NewQuizService(nil, testConfig()))

	req := httptest.NewRequest(http.MethodPost, "/api/generate-quiz", strings.NewReader(`{"topic":"`+strings.Repeat("x", 2048)+`"}`))
	req.Header.Set("Content-Type", "application/json")
	// fasthttp rejects the body before any handler runs, so the error handler
	// never sees it and no JSON body is written.
	_, err := app.Test(req)
	require.ErrorContains(t, err, "body size exceeds")
}

func TestGeneratorSetup_OpenAIKeyDoesNotConfigureGemini(t *testing.T) {
	for _, key := range []string{"GEMINI_API_KEY", "VITE_GEMINI_API_KEY", "LLM_PROVIDER", "LLM_MODEL"} {
		t.Setenv(key, "")
	}
	t.Setenv("OPENAI_API_KEY", "openai-key")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, config.ProviderGemini, cfg.LLM.Provider)

	generator, err := quizgen.New(context.Background(), cfg.LLM, nil)
	require.ErrorIs(t, err, quizgen.ErrMissingAPIKey)
	assert.Nil(t, generator)

	app := newApp(testConfig(), service.NewQuizService(nil, testConfig()))
	req := httptest.NewRequest(http.MethodPost, "/api/generate-quiz", strings.NewReader(`{"topic":"Go","difficulty":"Easy","numQuestions":2}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, domain.MsgGeneratorUnavailable, out.Error)
}

func TestNewApp_UnconfiguredGenerator(t *testing.T) {
	app := newApp(testConfig(), service.NewQuizService(nil, testConfig()))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"status":"OK","modelInitialized":false}`, string(body))
}

func TestSwaggerDocRegistered(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)
	assert.Contains(t, doc, "/generate-quiz")
	assert.True(t, json.Valid([]byte(doc)))
}
