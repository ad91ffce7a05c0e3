package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/domain"
)

// AnalyzeLead runs a one-shot extraction over the conversation's user
// messages and persists the result as the conversation's lead analysis,
// overwriting any prior analysis wholesale. The message array is untouched.
//
// Fails with domain.ErrNoUserInput when the conversation has no user turn and
// with domain.ErrMalformedAnalysis when the completion reply contains no
// parseable JSON object; neither failure writes to the store.
func (s *Service) AnalyzeLead(ctx context.Context, sessionID string) (*domain.LeadAnalysis, error) {
	conv, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	userMessages := conv.UserMessages()
	if len(userMessages) == 0 {
		return nil, domain.ErrNoUserInput
	}

	var transcript strings.Builder
	for i, msg := range userMessages {
		if i > 0 {
			transcript.WriteByte('\n')
		}
		transcript.WriteString(transcriptLinePrefix)
		transcript.WriteString(msg.Content)
	}

	// Temperature is biased low: this is extraction, not generation.
	reply, err := s.llmClient.Complete(ctx, []domain.Message{
		{Role: domain.RoleSystem, Content: analysisPrompt},
		{Role: domain.RoleUser, Content: "Please analyze this conversation transcript:\n\n" + transcript.String()},
	}, s.config.AnalysisMaxTokens, float32(s.config.AnalysisTemperature))
	if err != nil {
		return nil, err
	}

	raw, ok := extractJSONObject(reply)
	if !ok {
		return nil, domain.ErrMalformedAnalysis
	}
	var analysis domain.LeadAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedAnalysis, err)
	}

	if err := s.store.UpdateLeadAnalysis(ctx, sessionID, &analysis, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to persist lead analysis: %w", err)
	}
	return &analysis, nil
}
