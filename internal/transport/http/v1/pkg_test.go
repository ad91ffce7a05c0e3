package v1

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/config"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/domain"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/service"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/store"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/policy"
)

// stubCompletionClient returns a fixed reply or error.
type stubCompletionClient struct {
	reply string
	err   error
}

func (s *stubCompletionClient) Complete(ctx context.Context, messages []domain.Message, maxTokens int, temperature float32) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type testEnv struct {
	echo    *echo.Echo
	service *service.Service
	client  *stubCompletionClient
	store   store.ConversationStore
}

func newTestEnv(t *testing.T, exposeDebug bool) *testEnv {
	t.Helper()

	db, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		DatabaseDriver:      "sqlite3",
		ChatMaxTokens:       500,
		ChatTemperature:     0.7,
		AnalysisMaxTokens:   1000,
		AnalysisTemperature: 0.3,
		ExposeDebug:         exposeDebug,
	}

	client := &stubCompletionClient{reply: "stub reply"}
	svc := service.New(db, client, cfg)

	pol, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	e := echo.New()
	NewHandler(svc, pol, cfg).RegisterRoutes(e)

	return &testEnv{echo: e, service: svc, client: client, store: db}
}

// do runs a request through the full route table and returns the recorder.
func (env *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) seedChat(t *testing.T, message string) string {
	t.Helper()
	result, err := env.service.Chat(context.Background(), "", message)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	return result.SessionID
}
