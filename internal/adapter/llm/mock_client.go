package llm

import (
	"context"
	"fmt"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/domain"
)

// MockClient is a canned implementation of CompletionClient for running the
// service without an API key.
type MockClient struct{}

// NewMockClient creates a new mock completion client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Complete returns a canned reply derived from the last user message.
func (m *MockClient) Complete(ctx context.Context, messages []domain.Message, maxTokens int, temperature float32) (string, error) {
	var lastUserMessage string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			lastUserMessage = messages[i].Content
			break
		}
	}

	if lastUserMessage == "" {
		return "[MOCK] This is a mock response from the completion client.", nil
	}
	return fmt.Sprintf("[MOCK] Received your message: %q. This is a mock response.", truncate(lastUserMessage, 100)), nil
}

// truncate truncates a string to the given number of characters.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
