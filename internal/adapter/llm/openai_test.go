package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/domain"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantQuota bool
		wantAuth  bool
	}{
		{
			name:      "insufficient quota code",
			err:       &openai.APIError{Code: "insufficient_quota", Message: "quota gone"},
			wantQuota: true,
		},
		{
			name:     "invalid api key code",
			err:      &openai.APIError{Code: "invalid_api_key", Message: "bad key"},
			wantAuth: true,
		},
		{
			name:     "401 without code",
			err:      &openai.APIError{HTTPStatusCode: http.StatusUnauthorized, Message: "unauthorized"},
			wantAuth: true,
		},
		{
			name: "other api error",
			err:  &openai.APIError{Code: "rate_limit_exceeded", HTTPStatusCode: http.StatusTooManyRequests},
		},
		{
			name: "transport error",
			err:  errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := classifyError(tt.err)
			assert.Equal(t, tt.wantQuota, IsQuotaExceeded(classified))
			assert.Equal(t, tt.wantAuth, IsAuthFailure(classified))

			// Classification wraps rather than discards.
			assert.ErrorIs(t, classified, tt.err)
		})
	}
}

func TestErrorHelpersIgnoreForeignErrors(t *testing.T) {
	err := errors.New("plain")
	assert.False(t, IsQuotaExceeded(err))
	assert.False(t, IsAuthFailure(err))
	assert.False(t, IsQuotaExceeded(nil))
}

func newCompletionServer(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIClient("test-key", srv.URL+"/v1", "gpt-4o-mini", 5*time.Second)
}

func TestCompleteSendsTuningAndReturnsReply(t *testing.T) {
	var gotReq openai.ChatCompletionRequest
	client := newCompletionServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hello!"}, "finish_reason": "stop"}]
		}`)
	})

	reply, err := client.Complete(context.Background(), []domain.Message{
		{Role: domain.RoleSystem, Content: "seed"},
		{Role: domain.RoleUser, Content: "Hi"},
	}, 500, 0.7)
	require.NoError(t, err)
	assert.Equal(t, "Hello!", reply)

	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, 500, gotReq.MaxTokens)
	assert.InDelta(t, 0.7, gotReq.Temperature, 0.0001)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "Hi", gotReq.Messages[1].Content)
}

func TestCompleteMapsAuthFailure(t *testing.T) {
	client := newCompletionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`)
	})

	_, err := client.Complete(context.Background(), []domain.Message{{Role: domain.RoleUser, Content: "Hi"}}, 500, 0.7)
	require.Error(t, err)
	assert.True(t, IsAuthFailure(err))
	assert.False(t, IsQuotaExceeded(err))
}

func TestCompleteMapsQuotaFailure(t *testing.T) {
	client := newCompletionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"message": "You exceeded your current quota", "type": "insufficient_quota", "code": "insufficient_quota"}}`)
	})

	_, err := client.Complete(context.Background(), []domain.Message{{Role: domain.RoleUser, Content: "Hi"}}, 500, 0.7)
	require.Error(t, err)
	assert.True(t, IsQuotaExceeded(err))
}

func TestCompleteEmptyChoices(t *testing.T) {
	client := newCompletionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "chatcmpl-1", "object": "chat.completion", "model": "gpt-4o-mini", "choices": []}`)
	})

	_, err := client.Complete(context.Background(), []domain.Message{{Role: domain.RoleUser, Content: "Hi"}}, 500, 0.7)
	require.Error(t, err)
	assert.False(t, IsQuotaExceeded(err))
	assert.False(t, IsAuthFailure(err))
}

func TestMockClientEchoesLastUserMessage(t *testing.T) {
	client := NewMockClient()

	reply, err := client.Complete(context.Background(), []domain.Message{
		{Role: domain.RoleSystem, Content: "seed"},
		{Role: domain.RoleUser, Content: "first"},
		{Role: domain.RoleAssistant, Content: "ok"},
		{Role: domain.RoleUser, Content: "second"},
	}, 500, 0.7)
	require.NoError(t, err)
	assert.Contains(t, reply, `"second"`)
	assert.Contains(t, reply, "[MOCK]")
}

func TestMockClientTruncatesByCharacter(t *testing.T) {
	client := NewMockClient()

	long := strings.Repeat("é", 120)
	reply, err := client.Complete(context.Background(), []domain.Message{
		{Role: domain.RoleUser, Content: long},
	}, 500, 0.7)
	require.NoError(t, err)
	assert.Contains(t, reply, strings.Repeat("é", 100)+"...")
	assert.NotContains(t, reply, strings.Repeat("é", 101))
	assert.True(t, utf8.ValidString(reply))
}

func TestMockClientWithoutUserMessage(t *testing.T) {
	client := NewMockClient()

	reply, err := client.Complete(context.Background(), []domain.Message{
		{Role: domain.RoleSystem, Content: "seed"},
	}, 500, 0.7)
	require.NoError(t, err)
	assert.Contains(t, reply, "[MOCK]")
}

func TestNewCompletionClientModeSwitch(t *testing.T) {
	t.Setenv(EnvChatbotMode, ModeMock)
	client := NewCompletionClient("", "", "gpt-4o-mini", time.Second)
	_, isMock := client.(*MockClient)
	assert.True(t, isMock)

	t.Setenv(EnvChatbotMode, "")
	client = NewCompletionClient("key", "", "gpt-4o-mini", time.Second)
	_, isReal := client.(*OpenAIClient)
	assert.True(t, isReal)
}
