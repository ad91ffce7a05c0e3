package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/domain"
)

// ChatResult is the outcome of one chat turn.
type ChatResult struct {
	Response  string
	SessionID string
}

// Chat performs one chat turn: load or create the conversation, send the
// history plus the new user message to the completion API, then persist both
// the user and assistant turns in a single write. Nothing is persisted for
// this turn when the completion fails, and a failed persist after a
// successful completion surfaces as an error even though the model already
// replied.
func (s *Service) Chat(ctx context.Context, sessionID, message string) (*ChatResult, error) {
	if sessionID == "" {
		sessionID = NewSessionID()
	}

	conv, err := s.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	history := append(append([]domain.Message{}, conv.Messages...), domain.Message{
		Role:    domain.RoleUser,
		Content: message,
	})

	reply, err := s.llmClient.Complete(ctx, history, s.config.ChatMaxTokens, float32(s.config.ChatTemperature))
	if err != nil {
		return nil, err
	}

	final := append(history, domain.Message{
		Role:    domain.RoleAssistant,
		Content: reply,
	})
	if err := s.store.UpdateMessages(ctx, sessionID, final, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to persist messages: %w", err)
	}

	return &ChatResult{
		Response:  reply,
		SessionID: sessionID,
	}, nil
}
