// Package llm provides an abstraction for the chat completion API.
package llm

import (
	"context"
	"errors"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/domain"
)

// CompletionClient defines the completion operation the service depends on.
type CompletionClient interface {
	// Complete sends the message history and returns the assistant reply text.
	Complete(ctx context.Context, messages []domain.Message, maxTokens int, temperature float32) (string, error)
}

// ErrorKind classifies upstream completion failures. The rest of the service
// depends only on this taxonomy, never on the client library's error shapes.
type ErrorKind string

const (
	ErrorKindQuota ErrorKind = "quota_exceeded"
	ErrorKindAuth  ErrorKind = "invalid_credential"
	ErrorKindOther ErrorKind = "other"
)

// Error is a tagged completion failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return "llm: " + string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsQuotaExceeded reports whether err is an upstream quota failure.
func IsQuotaExceeded(err error) bool {
	return kindOf(err) == ErrorKindQuota
}

// IsAuthFailure reports whether err is an upstream credential failure.
func IsAuthFailure(err error) bool {
	return kindOf(err) == ErrorKindAuth
}

func kindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Ensure implementations satisfy the interface.
var (
	_ CompletionClient = (*OpenAIClient)(nil)
	_ CompletionClient = (*MockClient)(nil)
)
