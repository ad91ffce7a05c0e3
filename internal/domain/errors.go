package domain

import "errors"

var (
	// ErrNotFound indicates the requested conversation does not exist.
	ErrNotFound = errors.New("conversation not found")

	// ErrNoUserInput indicates a lead analysis was requested for a
	// conversation without any user-authored messages.
	ErrNoUserInput = errors.New("no user messages found in conversation")

	// ErrMalformedAnalysis indicates the completion reply contained no
	// parseable JSON object.
	ErrMalformedAnalysis = errors.New("no valid JSON found in completion reply")
)
