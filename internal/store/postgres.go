package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/domain"
)

// PostgresStore implements ConversationStore using PostgreSQL via pgx.
// This is the production backend; managed Postgres offerings work unchanged.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore connects to Postgres and migrates the schema.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresStore{db: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// pgx's extended protocol runs one statement per Exec.
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			id BIGSERIAL PRIMARY KEY,
			conversation_id TEXT NOT NULL UNIQUE,
			messages JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ,
			lead_analysis JSONB
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_updated
			ON conversations (COALESCE(updated_at, created_at) DESC)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

// CreateConversation inserts a new conversation row.
func (s *PostgresStore) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	messages, err := json.Marshal(conv.Messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}
	return s.db.QueryRow(ctx,
		`INSERT INTO conversations (conversation_id, messages, created_at)
		 VALUES ($1, $2, $3) RETURNING id`,
		conv.SessionID, messages, conv.CreatedAt).Scan(&conv.ID)
}

// GetConversation retrieves a conversation by session ID.
func (s *PostgresStore) GetConversation(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	var messages []byte
	var updatedAt *time.Time
	var leadAnalysis []byte

	err := s.db.QueryRow(ctx,
		`SELECT id, conversation_id, messages, created_at, updated_at, lead_analysis
		 FROM conversations WHERE conversation_id = $1`, sessionID).
		Scan(&conv.ID, &conv.SessionID, &messages, &conv.CreatedAt, &updatedAt, &leadAnalysis)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(messages, &conv.Messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	conv.UpdatedAt = updatedAt
	if len(leadAnalysis) > 0 {
		var analysis domain.LeadAnalysis
		if err := json.Unmarshal(leadAnalysis, &analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lead analysis: %w", err)
		}
		conv.LeadAnalysis = &analysis
	}
	return &conv, nil
}

// UpdateMessages replaces the message array of a conversation.
func (s *PostgresStore) UpdateMessages(ctx context.Context, sessionID string, messages []domain.Message, updatedAt time.Time) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}
	_, err = s.db.Exec(ctx,
		`UPDATE conversations SET messages = $1, updated_at = $2 WHERE conversation_id = $3`,
		data, updatedAt, sessionID)
	return err
}

// UpdateLeadAnalysis replaces the lead analysis of a conversation.
func (s *PostgresStore) UpdateLeadAnalysis(ctx context.Context, sessionID string, analysis *domain.LeadAnalysis, updatedAt time.Time) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal lead analysis: %w", err)
	}
	_, err = s.db.Exec(ctx,
		`UPDATE conversations SET lead_analysis = $1, updated_at = $2 WHERE conversation_id = $3`,
		data, updatedAt, sessionID)
	return err
}

// DeleteConversation removes a conversation. No error for absent rows.
func (s *PostgresStore) DeleteConversation(ctx context.Context, sessionID string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM conversations WHERE conversation_id = $1`, sessionID)
	return err
}

// ListConversations returns all conversations, most recently touched first.
func (s *PostgresStore) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, conversation_id, messages, created_at, updated_at, lead_analysis
		 FROM conversations
		 ORDER BY COALESCE(updated_at, created_at) DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Conversation
	for rows.Next() {
		var conv domain.Conversation
		var messages []byte
		var updatedAt *time.Time
		var leadAnalysis []byte
		if err := rows.Scan(&conv.ID, &conv.SessionID, &messages, &conv.CreatedAt, &updatedAt, &leadAnalysis); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(messages, &conv.Messages); err != nil {
			return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
		}
		conv.UpdatedAt = updatedAt
		if len(leadAnalysis) > 0 {
			var analysis domain.LeadAnalysis
			if err := json.Unmarshal(leadAnalysis, &analysis); err != nil {
				return nil, fmt.Errorf("failed to unmarshal lead analysis: %w", err)
			}
			conv.LeadAnalysis = &analysis
		}
		out = append(out, conv)
	}
	return out, rows.Err()
}

// CountConversations returns the number of stored conversations.
func (s *PostgresStore) CountConversations(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM conversations`).Scan(&count)
	return count, err
}
