// Package store persists conversations in a relational database.
package store

import (
	"context"
	"time"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/domain"
)

// ConversationStore is the keyed-record contract the rest of the service
// depends on. Per-key reads are strongly consistent; no operation spans more
// than one row.
type ConversationStore interface {
	// CreateConversation inserts a new conversation and fills in its row ID.
	CreateConversation(ctx context.Context, conv *domain.Conversation) error

	// GetConversation retrieves a conversation by session ID.
	// Returns (nil, nil) when no row exists.
	GetConversation(ctx context.Context, sessionID string) (*domain.Conversation, error)

	// UpdateMessages replaces the whole message array of a conversation and
	// stamps updated_at. It never touches lead_analysis.
	UpdateMessages(ctx context.Context, sessionID string, messages []domain.Message, updatedAt time.Time) error

	// UpdateLeadAnalysis replaces the lead analysis of a conversation and
	// stamps updated_at. It never touches messages.
	UpdateLeadAnalysis(ctx context.Context, sessionID string, analysis *domain.LeadAnalysis, updatedAt time.Time) error

	// DeleteConversation removes a conversation. Deleting an absent session
	// ID is not an error.
	DeleteConversation(ctx context.Context, sessionID string) error

	// ListConversations returns all conversations ordered by most recent
	// update descending, falling back to creation time for rows never
	// updated.
	ListConversations(ctx context.Context) ([]domain.Conversation, error)

	// CountConversations returns the number of stored conversations.
	CountConversations(ctx context.Context) (int, error)

	Close() error
}
