package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/pageza/thali/backend/internal/types"
)

const (
	// DefaultInferenceURL is the chat-completions endpoint of a local LM Studio server
	DefaultInferenceURL = "http://localhost:1234/v1/chat/completions"
	// DefaultInferenceModel lets the server answer with whichever model is loaded
	DefaultInferenceModel   = "loaded_model"
	DefaultInferenceTimeout = 120 * time.Second

	inferenceTemperature = 0.7
	inferenceMaxTokens   = 1500
)

// ChatCompletionClient talks to an OpenAI-compatible chat-completions server
type ChatCompletionClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  logrus.FieldLogger
}

// NewChatCompletionClient creates a client for the chat-completions endpoint at endpoint.
// An empty endpoint falls back to DefaultInferenceURL.
func NewChatCompletionClient(endpoint, model string, timeout time.Duration, logger logrus.FieldLogger) *ChatCompletionClient {
	if endpoint == "" {
		endpoint = DefaultInferenceURL
	}
	if model == "" {
		model = DefaultInferenceModel
	}
	if timeout <= 0 {
		timeout = DefaultInferenceTimeout
	}

	// go-openai appends /chat/completions itself
	cfg := openai.DefaultConfig("")
	cfg.BaseURL = strings.TrimSuffix(strings.TrimSuffix(endpoint, "/"), "/chat/completions")
	cfg.HTTPClient = &http.Client{}

	return &ChatCompletionClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// Complete sends a system and a user message and returns the first choice's content.
// The call is bounded by the client timeout and is not cancelled with ctx.
func (c *ChatCompletionClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: inferenceTemperature,
		MaxTokens:   inferenceMaxTokens,
		N:           1,
	}

	c.logger.WithField("model", c.model).Debugf("Sending prompt to inference server:\n%s", userPrompt)

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyInferenceError(err)
	}

	if len(resp.Choices) == 0 {
		c.logger.Warn("Inference server returned no choices")
		return "", nil
	}

	content := resp.Choices[0].Message.Content
	c.logger.WithField("elapsed", time.Since(start)).Debugf("Raw inference response: %s", content)
	return content, nil
}

func classifyInferenceError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return types.NewError(types.KindUpstreamBadResponse,
			fmt.Sprintf("AI model server returned status %d", apiErr.HTTPStatusCode), err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return types.NewError(types.KindUpstreamBadResponse,
			fmt.Sprintf("AI model server returned status %d", reqErr.HTTPStatusCode), err)
	}

	switch transportErrorKind(err) {
	case types.KindUpstreamTimeout:
		return types.NewError(types.KindUpstreamTimeout, "The AI model server timed out.", err)
	case types.KindUpstreamUnreachable:
		return types.NewError(types.KindUpstreamUnreachable,
			fmt.Sprintf("Could not connect to AI model server. Is the inference server running? Details: %v", err), err)
	default:
		return types.NewError(types.KindUpstreamBadResponse, "AI model server sent an unreadable response", err)
	}
}

// transportErrorKind tells timeouts from connection failures. Errors that are
// neither yield KindUpstreamBadResponse.
func transportErrorKind(err error) types.ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return types.KindUpstreamTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return types.KindUpstreamTimeout
	}

	var urlErr *url.Error
	var opErr *net.OpError
	if errors.As(err, &urlErr) || errors.As(err, &opErr) {
		return types.KindUpstreamUnreachable
	}
	return types.KindUpstreamBadResponse
}
