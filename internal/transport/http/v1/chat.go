package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/adapter/llm"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// Chat handles one chat turn.
// POST /chat
func (h *Handler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Message is required"})
	}

	ctx := c.Request().Context()

	result, err := h.service.Chat(ctx, req.SessionID, req.Message)
	if err != nil {
		return h.writeUpstreamError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"response":  result.Response,
		"sessionId": result.SessionID,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeUpstreamError maps completion-gateway failures onto the error contract
// shared by the chat and analyze-lead endpoints.
func (h *Handler) writeUpstreamError(c echo.Context, err error) error {
	switch {
	case llm.IsQuotaExceeded(err):
		return c.JSON(http.StatusPaymentRequired, map[string]string{
			"error": "OpenAI API quota exceeded. Please check your billing.",
		})
	case llm.IsAuthFailure(err):
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid OpenAI API key. Please check your configuration.",
		})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Internal server error. Please try again later.",
		})
	}
}
