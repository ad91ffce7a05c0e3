package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/adapter/llm"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/domain"
)

// GetConversation returns the transcript for a session.
// GET /conversation/:session_id
func (h *Handler) GetConversation(c echo.Context) error {
	sessionID := c.Param("session_id")
	ctx := c.Request().Context()

	conv, err := h.service.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Conversation not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve conversation"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"sessionId": conv.SessionID,
		"messages":  conv.Messages,
		"createdAt": conv.CreatedAt,
		"id":        conv.ID,
	})
}

// DeleteConversation removes a session. Deleting an unknown session succeeds.
// DELETE /conversation/:session_id
func (h *Handler) DeleteConversation(c echo.Context) error {
	sessionID := c.Param("session_id")
	ctx := c.Request().Context()

	if err := h.service.Delete(ctx, sessionID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete conversation"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Conversation cleared successfully"})
}

// AnalyzeLead runs the lead extraction for a session.
// POST /conversation/:session_id/analyze-lead
func (h *Handler) AnalyzeLead(c echo.Context) error {
	sessionID := c.Param("session_id")
	ctx := c.Request().Context()

	analysis, err := h.service.AnalyzeLead(ctx, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Conversation not found"})
		case errors.Is(err, domain.ErrNoUserInput):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "No user messages found in conversation"})
		case errors.Is(err, domain.ErrMalformedAnalysis):
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to parse lead analysis response"})
		case llm.IsQuotaExceeded(err), llm.IsAuthFailure(err):
			return h.writeUpstreamError(c, err)
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error. Please try again later."})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"leadAnalysis": analysis,
		"message":      "Lead analysis completed successfully",
	})
}
