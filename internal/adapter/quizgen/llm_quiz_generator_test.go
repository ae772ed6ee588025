package quizgen_test

import (
	"context"
	"errors"
	"testing"

	"quiz-builder/internal/adapter/quizgen"
	"quiz-builder/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// fakeModel is a hand-written llms.Model double.
type fakeModel struct {
	resp     *llms.ContentResponse
	err      error
	calls    int
	messages []llms.MessageContent
	opts     llms.CallOptions
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	f.messages = messages
	for _, opt := range options {
		opt(&f.opts)
	}
	return f.resp, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestNewLLMQuizGenerator(t *testing.T) {
	gen, err := quizgen.NewLLMQuizGenerator(&fakeModel{}, "test-model", 0.2, zap.NewNop())
	assert.NoError(t, err)
	assert.NotNil(t, gen)

	_, err = quizgen.NewLLMQuizGenerator(nil, "test-model", 0.2, zap.NewNop())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be nil")

	gen, err = quizgen.NewLLMQuizGenerator(&fakeModel{}, "test-model", 0.2, nil)
	assert.NoError(t, err)
	assert.NotNil(t, gen)
}

func TestLLMQuizGenerator_Generate_Success(t *testing.T) {
	model := &fakeModel{
		resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "```json\n[]\n```"}}},
	}
	gen, err := quizgen.NewLLMQuizGenerator(model, "test-model", 0.3, zap.NewNop())
	require.NoError(t, err)

	text, err := gen.Generate(context.Background(), "make a quiz")
	require.NoError(t, err)
	assert.Equal(t, "```json\n[]\n```", text)

	assert.Equal(t, 1, model.calls)
	require.Len(t, model.messages, 1)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[0].Role)
	require.Len(t, model.messages[0].Parts, 1)
	assert.Equal(t, llms.TextContent{Text: "make a quiz"}, model.messages[0].Parts[0])
	assert.InDelta(t, 0.3, model.opts.Temperature, 1e-9)
}

func TestLLMQuizGenerator_Generate_Errors(t *testing.T) {
	t.Run("provider failure", func(t *testing.T) {
		model := &fakeModel{err: errors.New("quota exceeded")}
		gen, err := quizgen.NewLLMQuizGenerator(model, "test-model", 0, zap.NewNop())
		require.NoError(t, err)

		text, err := gen.Generate(context.Background(), "prompt")
		assert.Empty(t, text)
		assert.ErrorContains(t, err, "LLM call failed")
		assert.ErrorContains(t, err, "quota exceeded")
		assert.Equal(t, 1, model.calls)
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		model := &fakeModel{err: context.DeadlineExceeded}
		gen, err := quizgen.NewLLMQuizGenerator(model, "test-model", 0, zap.NewNop())
		require.NoError(t, err)

		_, err = gen.Generate(context.Background(), "prompt")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.ErrorContains(t, err, "timed out")
	})
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name string
		resp *llms.ContentResponse
		want string
	}{
		{name: "nil response", resp: nil, want: ""},
		{name: "no choices", resp: &llms.ContentResponse{}, want: ""},
		{name: "nil choice", resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{nil}}, want: ""},
		{
			name: "first choice content",
			resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "one"}, {Content: "two"}}},
			want: "one",
		},
		{
			name: "skips blank choices",
			resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "  \n"}, {Content: "two"}}},
			want: "two",
		},
		{
			name: "function call arguments",
			resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{FuncCall: &llms.FunctionCall{Name: "quiz", Arguments: `[{"question":"Q"}]`}}}},
			want: `[{"question":"Q"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, quizgen.ResponseText(tt.resp))
		})
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("gemini without key", func(t *testing.T) {
		gen, err := quizgen.New(ctx, config.LLMConfig{Provider: config.ProviderGemini}, zap.NewNop())
		assert.ErrorIs(t, err, quizgen.ErrMissingAPIKey)
		assert.Nil(t, gen)
	})

	t.Run("openai without key", func(t *testing.T) {
		_, err := quizgen.New(ctx, config.LLMConfig{Provider: config.ProviderOpenAI}, zap.NewNop())
		assert.ErrorIs(t, err, quizgen.ErrMissingAPIKey)
	})

	t.Run("unsupported provider", func(t *testing.T) {
		_, err := quizgen.New(ctx, config.LLMConfig{Provider: "mystery"}, zap.NewNop())
		assert.ErrorContains(t, err, "unsupported LLM provider")
	})

	t.Run("ollama needs no key", func(t *testing.T) {
		gen, err := quizgen.New(ctx, config.LLMConfig{
			Provider:  config.ProviderOllama,
			ServerURL: "http://localhost:11434",
		}, zap.NewNop())
		require.NoError(t, err)
		assert.NotNil(t, gen)
	})

	t.Run("openai with key", func(t *testing.T) {
		gen, err := quizgen.New(ctx, config.LLMConfig{Provider: config.ProviderOpenAI, APIKey: "sk-test"}, zap.NewNop())
		require.NoError(t, err)
		assert.NotNil(t, gen)
	})
}
