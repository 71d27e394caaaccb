package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextGenerator(t *testing.T) {
	ctx := context.Background()

	gen, err := NewTextGenerator(ctx, "none", LLMOptions{})
	require.NoError(t, err)
	assert.Equal(t, "none", gen.Name())
	_, err = gen.Generate(ctx, "hi")
	assert.ErrorIs(t, err, ErrGeneratorDisabled)

	gen, err = NewTextGenerator(ctx, "", LLMOptions{})
	require.NoError(t, err)
	assert.IsType(t, DisabledGenerator{}, gen)

	_, err = NewTextGenerator(ctx, "wenxin", LLMOptions{APIKey: "k"})
	assert.Error(t, err)

	_, err = NewTextGenerator(ctx, "dashscope", LLMOptions{})
	assert.Error(t, err, "an api key is required")
}

func fakeCompletionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body struct {
			Model string `json:"model"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, DefaultDashScopeModel, body.Model)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  body.Model,
			"choices": []map[string]any{
				{"index": 0, "finish_reason": "stop", "message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDashScopeClient_Generate(t *testing.T) {
	srv := fakeCompletionServer(t, `{"destination":"北京"}`)

	client, err := NewDashScopeClient(LLMOptions{APIKey: "test-key", BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, "阿里云DashScope API", client.Name())

	out, err := client.Generate(context.Background(), "去北京")
	require.NoError(t, err)
	assert.Equal(t, `{"destination":"北京"}`, out)
}

func TestDashScopeClient_EmptyCompletion(t *testing.T) {
	srv := fakeCompletionServer(t, "   ")

	client, err := NewDashScopeClient(LLMOptions{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "去北京")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestDashScopeClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded","type":"limit"}}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	client, err := NewDashScopeClient(LLMOptions{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "去北京")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashscope chat completion")
}
