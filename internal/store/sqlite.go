package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/domain"
)

// SQLiteStore implements ConversationStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) a SQLite database.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			conversation_id TEXT NOT NULL UNIQUE,
			messages TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME,
			lead_analysis TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_updated ON conversations(updated_at, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateConversation inserts a new conversation row.
func (s *SQLiteStore) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	messages, err := json.Marshal(conv.Messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (conversation_id, messages, created_at) VALUES (?, ?, ?)`,
		conv.SessionID, string(messages), conv.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	conv.ID = id
	return nil
}

// GetConversation retrieves a conversation by session ID.
func (s *SQLiteStore) GetConversation(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, conversation_id, messages, created_at, updated_at, lead_analysis
		 FROM conversations WHERE conversation_id = ?`, sessionID)
	conv, err := scanConversation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// UpdateMessages replaces the message array of a conversation.
func (s *SQLiteStore) UpdateMessages(ctx context.Context, sessionID string, messages []domain.Message, updatedAt time.Time) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE conversations SET messages = ?, updated_at = ? WHERE conversation_id = ?`,
		string(data), updatedAt, sessionID)
	return err
}

// UpdateLeadAnalysis replaces the lead analysis of a conversation.
func (s *SQLiteStore) UpdateLeadAnalysis(ctx context.Context, sessionID string, analysis *domain.LeadAnalysis, updatedAt time.Time) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal lead analysis: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE conversations SET lead_analysis = ?, updated_at = ? WHERE conversation_id = ?`,
		string(data), updatedAt, sessionID)
	return err
}

// DeleteConversation removes a conversation. No error for absent rows.
func (s *SQLiteStore) DeleteConversation(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM conversations WHERE conversation_id = ?`, sessionID)
	return err
}

// ListConversations returns all conversations, most recently touched first.
func (s *SQLiteStore) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, conversation_id, messages, created_at, updated_at, lead_analysis
		 FROM conversations
		 ORDER BY COALESCE(updated_at, created_at) DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Conversation
	for rows.Next() {
		conv, err := scanConversation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *conv)
	}
	return out, rows.Err()
}

// CountConversations returns the number of stored conversations.
func (s *SQLiteStore) CountConversations(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversations`).Scan(&count)
	return count, err
}

func scanConversation(scan func(dest ...interface{}) error) (*domain.Conversation, error) {
	var conv domain.Conversation
	var messages string
	var updatedAt sql.NullTime
	var leadAnalysis sql.NullString

	if err := scan(&conv.ID, &conv.SessionID, &messages, &conv.CreatedAt, &updatedAt, &leadAnalysis); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(messages), &conv.Messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	if updatedAt.Valid {
		conv.UpdatedAt = &updatedAt.Time
	}
	if leadAnalysis.Valid {
		var analysis domain.LeadAnalysis
		if err := json.Unmarshal([]byte(leadAnalysis.String), &analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lead analysis: %w", err)
		}
		conv.LeadAnalysis = &analysis
	}
	return &conv, nil
}
