package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/thali/backend/internal/logger"
	"github.com/pageza/thali/backend/internal/types"
)

const completionBody = `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"loaded_model","choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`

func newTestInferenceClient(url string, timeout time.Duration) *ChatCompletionClient {
	return NewChatCompletionClient(url+"/v1/chat/completions", "", timeout, logger.Discard())
}

func TestChatCompletionClient_Complete(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, completionBody, `[{"name":"Khichdi"}]`)
	}))
	defer ts.Close()

	client := newTestInferenceClient(ts.URL, time.Second)
	content, err := client.Complete(context.Background(), MealSystemPrompt, "user prompt")

	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Khichdi"}]`, content)
	assert.Equal(t, DefaultInferenceModel, got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 0.0001)
	assert.Equal(t, 1500, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, MealSystemPrompt, got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "user prompt", got.Messages[1].Content)
}

func TestChatCompletionClient_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"chatcmpl-1","object":"chat.completion","choices":[]}`)
	}))
	defer ts.Close()

	content, err := newTestInferenceClient(ts.URL, time.Second).Complete(context.Background(), "sys", "user")

	require.NoError(t, err)
	assert.Equal(t, "", content)
}

func TestChatCompletionClient_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := newTestInferenceClient(ts.URL, time.Second).Complete(context.Background(), "sys", "user")

	require.Error(t, err)
	assert.Equal(t, types.KindUpstreamBadResponse, types.KindOf(err))
}

func TestChatCompletionClient_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := newTestInferenceClient(url, time.Second).Complete(context.Background(), "sys", "user")

	require.Error(t, err)
	assert.Equal(t, types.KindUpstreamUnreachable, types.KindOf(err))
	assert.Equal(t, http.StatusServiceUnavailable, types.KindOf(err).StatusCode())
}

func TestChatCompletionClient_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()

	_, err := newTestInferenceClient(ts.URL, 50*time.Millisecond).Complete(context.Background(), "sys", "user")

	require.Error(t, err)
	assert.Equal(t, types.KindUpstreamTimeout, types.KindOf(err))
	assert.Contains(t, err.Error(), "The AI model server timed out.")
}

func TestChatCompletionClient_IgnoresCallerCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, completionBody, "still here")
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	content, err := newTestInferenceClient(ts.URL, time.Second).Complete(ctx, "sys", "user")

	require.NoError(t, err)
	assert.Equal(t, "still here", content)
}
