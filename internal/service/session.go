package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/domain"
)

// previewLength is the number of characters of the first user message shown
// in session listings.
const previewLength = 100

// noMessagesPreview is shown for conversations without any user turn yet.
const noMessagesPreview = "No messages yet"

// NewSessionID generates a session identifier: a base36 millisecond timestamp
// prefix plus a random suffix. Uniqueness is probabilistic; no registry is
// consulted.
func NewSessionID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + shortuuid.New()
}

// GetOrCreate fetches a conversation, creating it with the seed system prompt
// when absent. A store "not found" is the creation path, not an error.
func (s *Service) GetOrCreate(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	conv, err := s.store.GetConversation(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if conv != nil {
		return conv, nil
	}

	conv = &domain.Conversation{
		SessionID: sessionID,
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: seedPrompt},
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

// AppendTurn loads a conversation, appends one message and persists the whole
// message array back (replace, not patch). There is no optimistic-concurrency
// check; two concurrent appends to the same session race last-write-wins.
func (s *Service) AppendTurn(ctx context.Context, sessionID, role, content string) (*domain.Conversation, error) {
	conv, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	conv.Messages = append(conv.Messages, domain.Message{Role: role, Content: content})
	if err := s.store.UpdateMessages(ctx, sessionID, conv.Messages, now); err != nil {
		return nil, fmt.Errorf("failed to persist messages: %w", err)
	}
	conv.UpdatedAt = &now
	return conv, nil
}

// Get retrieves a conversation or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	conv, err := s.store.GetConversation(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	return conv, nil
}

// Delete removes a conversation. Deleting an unknown session ID succeeds.
func (s *Service) Delete(ctx context.Context, sessionID string) error {
	if err := s.store.DeleteConversation(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

// ListAll returns dashboard summaries for every conversation, most recently
// updated first (creation time when never updated).
func (s *Service) ListAll(ctx context.Context) ([]domain.SessionSummary, error) {
	conversations, err := s.store.ListConversations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	summaries := make([]domain.SessionSummary, 0, len(conversations))
	for _, conv := range conversations {
		updatedAt := conv.CreatedAt
		if conv.UpdatedAt != nil {
			updatedAt = *conv.UpdatedAt
		}
		summaries = append(summaries, domain.SessionSummary{
			SessionID:    conv.SessionID,
			MessageCount: len(conv.Messages),
			CreatedAt:    conv.CreatedAt,
			UpdatedAt:    updatedAt,
			ID:           conv.ID,
			Preview:      preview(conv.Messages),
			LeadAnalysis: conv.LeadAnalysis,
		})
	}
	return summaries, nil
}

// ActiveSessions returns the number of stored conversations.
func (s *Service) ActiveSessions(ctx context.Context) (int, error) {
	return s.store.CountConversations(ctx)
}

func preview(messages []domain.Message) string {
	for _, msg := range messages {
		if msg.Role != domain.RoleUser {
			continue
		}
		if runes := []rune(msg.Content); len(runes) > previewLength {
			return string(runes[:previewLength]) + "..."
		}
		return msg.Content
	}
	return noMessagesPreview
}
