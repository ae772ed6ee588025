package quizgen

import (
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// ResponseText is the only place that knows the shape of a model response.
// Providers disagree on where text lands: most fill Content, some answer in a
// function call's arguments. Missing pieces yield "" instead of an error.
func ResponseText(resp *llms.ContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, choice := range resp.Choices {
		if choice == nil {
			continue
		}
		if strings.TrimSpace(choice.Content) != "" {
			return choice.Content
		}
		if choice.FuncCall != nil && strings.TrimSpace(choice.FuncCall.Arguments) != "" {
			return choice.FuncCall.Arguments
		}
	}
	return ""
}
