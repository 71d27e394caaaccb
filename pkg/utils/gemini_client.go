package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiClient generates itineraries with Google's Gemini models.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

func NewGeminiClient(ctx context.Context, opts LLMOptions) (*GeminiClient, error) {
	if len(opts.APIKey) == 0 {
		return nil, errors.New("missing the Gemini API key, set it in the GEMINI_API_KEY environment variable")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Gemini client")
	}

	model := opts.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &GeminiClient{
		client:      client,
		model:       model,
		temperature: opts.Temperature,
		timeout:     timeout,
	}, nil
}

func (c *GeminiClient) Name() string { return "Google Gemini API" }

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(c.temperature)
	model.ResponseMIMEType = "application/json"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", errors.Wrap(err, "gemini API call failed")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.Wrap(ErrEmptyCompletion, "gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		} else {
			b.WriteString(fmt.Sprintf("%v", part))
		}
	}
	if isBlank(b.String()) {
		return "", errors.Wrap(ErrEmptyCompletion, "gemini")
	}
	return b.String(), nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}
