package domain

import "time"

// Message roles. The seed system prompt is always the first message of a
// conversation; clients only ever submit user turns.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a conversation. Messages are immutable once
// appended; the whole array is rewritten on every persist.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is a persisted chat session keyed by an opaque session ID.
type Conversation struct {
	ID           int64         `json:"id"`
	SessionID    string        `json:"sessionId"`
	Messages     []Message     `json:"messages"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    *time.Time    `json:"updatedAt,omitempty"`
	LeadAnalysis *LeadAnalysis `json:"leadAnalysis,omitempty"`
}

// UserMessages returns the user-authored turns in original order.
func (c *Conversation) UserMessages() []Message {
	var out []Message
	for _, msg := range c.Messages {
		if msg.Role == RoleUser {
			out = append(out, msg)
		}
	}
	return out
}

// SessionSummary is the dashboard listing view of a conversation.
type SessionSummary struct {
	SessionID    string        `json:"sessionId"`
	MessageCount int           `json:"messageCount"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	ID           int64         `json:"id"`
	Preview      string        `json:"preview"`
	LeadAnalysis *LeadAnalysis `json:"leadAnalysis"`
}
