package utils

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultDashScopeBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	DefaultDashScopeModel   = "qwen-turbo"
)

type LLMOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// DashScopeClient talks to DashScope through its OpenAI compatible endpoint.
type DashScopeClient struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

func NewDashScopeClient(opts LLMOptions) (*DashScopeClient, error) {
	if len(opts.APIKey) == 0 {
		return nil, errors.New("missing the DashScope API key, set it in the DASHSCOPE_API_KEY environment variable")
	}

	config := openai.DefaultConfig(opts.APIKey)
	config.BaseURL = DefaultDashScopeBaseURL
	if opts.BaseURL != "" {
		config.BaseURL = opts.BaseURL
	}
	if opts.HTTPClient != nil {
		config.HTTPClient = opts.HTTPClient
	}

	model := opts.Model
	if model == "" {
		model = DefaultDashScopeModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &DashScopeClient{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: opts.Temperature,
		timeout:     timeout,
	}, nil
}

func (c *DashScopeClient) Name() string { return "阿里云DashScope API" }

func (c *DashScopeClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "dashscope chat completion")
	}
	if len(resp.Choices) == 0 || isBlank(resp.Choices[0].Message.Content) {
		return "", errors.Wrap(ErrEmptyCompletion, "dashscope")
	}
	return resp.Choices[0].Message.Content, nil
}
