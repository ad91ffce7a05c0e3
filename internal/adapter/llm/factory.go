package llm

import (
	"log"
	"os"
	"time"
)

const (
	// EnvChatbotMode is the environment variable name for mode selection.
	EnvChatbotMode = "CHATBOT_MODE"
	// ModeMock indicates mock mode should be used.
	ModeMock = "MOCK"
)

// NewCompletionClient creates a completion client based on the CHATBOT_MODE
// environment variable. If CHATBOT_MODE=MOCK, returns a MockClient; otherwise
// returns a real OpenAI client.
func NewCompletionClient(apiKey, baseURL, model string, timeout time.Duration) CompletionClient {
	if os.Getenv(EnvChatbotMode) == ModeMock {
		log.Println("CHATBOT_MODE=MOCK detected, using mock completion client")
		return NewMockClient()
	}
	return NewOpenAIClient(apiKey, baseURL, model, timeout)
}
