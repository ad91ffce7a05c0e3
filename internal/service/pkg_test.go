package service

import (
	"context"
	"testing"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/config"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/domain"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/store"
)

// stubCompletionClient records calls and returns a fixed reply or error.
type stubCompletionClient struct {
	reply string
	err   error

	calls           int
	lastMessages    []domain.Message
	lastMaxTokens   int
	lastTemperature float32
}

func (s *stubCompletionClient) Complete(ctx context.Context, messages []domain.Message, maxTokens int, temperature float32) (string, error) {
	s.calls++
	s.lastMessages = messages
	s.lastMaxTokens = maxTokens
	s.lastTemperature = temperature
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testConfig() *config.Config {
	return &config.Config{
		DatabaseDriver:      "sqlite3",
		ChatMaxTokens:       500,
		ChatTemperature:     0.7,
		AnalysisMaxTokens:   1000,
		AnalysisTemperature: 0.3,
	}
}

func newTestService(t *testing.T) (*Service, *stubCompletionClient, store.ConversationStore) {
	t.Helper()

	db, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	client := &stubCompletionClient{reply: "stub reply"}
	return New(db, client, testConfig()), client, db
}
