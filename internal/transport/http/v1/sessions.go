package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListSessions returns dashboard summaries for all conversations, most
// recently updated first.
// GET /sessions
func (h *Handler) ListSessions(c echo.Context) error {
	ctx := c.Request().Context()

	summaries, err := h.service.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve sessions"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"sessions": summaries,
	})
}

// DebugLeadAnalysis reports lead-analysis presence per conversation.
// GET /debug/lead-analysis
func (h *Handler) DebugLeadAnalysis(c echo.Context) error {
	ctx := c.Request().Context()

	summaries, err := h.service.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get lead analysis data"})
	}

	leadData := make([]map[string]interface{}, 0, len(summaries))
	withAnalysis := 0
	for _, s := range summaries {
		if s.LeadAnalysis != nil {
			withAnalysis++
		}
		leadData = append(leadData, map[string]interface{}{
			"sessionId":       s.SessionID,
			"hasLeadAnalysis": s.LeadAnalysis != nil,
			"leadAnalysis":    s.LeadAnalysis,
			"createdAt":       s.CreatedAt,
			"updatedAt":       s.UpdatedAt,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"totalConversations":            len(summaries),
		"conversationsWithLeadAnalysis": withAnalysis,
		"leadData":                      leadData,
	})
}
