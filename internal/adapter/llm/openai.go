package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/domain"
)

// OpenAIClient calls an OpenAI-compatible chat completion API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a completion client. baseURL may be empty to use
// the default OpenAI endpoint.
func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete sends the message history and returns the assistant reply text.
func (c *OpenAIClient) Complete(ctx context.Context, messages []domain.Message, maxTokens int, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    convertMessages(messages),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Kind: ErrorKindOther, Message: "no completion choices returned"}
	}
	return resp.Choices[0].Message.Content, nil
}

func convertMessages(messages []domain.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return out
}

// classifyError maps go-openai errors onto the gateway's failure taxonomy.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if code, ok := apiErr.Code.(string); ok {
			switch code {
			case "insufficient_quota":
				return &Error{Kind: ErrorKindQuota, Message: apiErr.Message, Err: err}
			case "invalid_api_key":
				return &Error{Kind: ErrorKindAuth, Message: apiErr.Message, Err: err}
			}
		}
		if apiErr.HTTPStatusCode == http.StatusUnauthorized {
			return &Error{Kind: ErrorKindAuth, Message: apiErr.Message, Err: err}
		}
		return &Error{Kind: ErrorKindOther, Message: apiErr.Message, Err: err}
	}
	return &Error{Kind: ErrorKindOther, Message: err.Error(), Err: err}
}
