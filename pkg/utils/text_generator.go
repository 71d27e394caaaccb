package utils

import (
	"context"
	"fmt"
	"strings"
)

// TextGenerator sends a prompt to a language model and returns the raw reply.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Name labels where generated content came from.
	Name() string
}

// DisabledGenerator is used when no provider is configured. Every call fails
// so callers take their local fallback path.
type DisabledGenerator struct{}

func (DisabledGenerator) Generate(context.Context, string) (string, error) {
	return "", ErrGeneratorDisabled
}

func (DisabledGenerator) Name() string { return "none" }

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// NewTextGenerator builds the generator for a provider name. "none" or an
// empty name yields a DisabledGenerator.
func NewTextGenerator(ctx context.Context, provider string, opts LLMOptions) (TextGenerator, error) {
	switch strings.ToLower(provider) {
	case "dashscope":
		return NewDashScopeClient(opts)
	case "gemini":
		return NewGeminiClient(ctx, opts)
	case "none", "":
		return DisabledGenerator{}, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
