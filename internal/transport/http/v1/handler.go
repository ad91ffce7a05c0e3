// Package v1 provides HTTP handlers for the chatbot backend.
package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/config"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/service"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/policy"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
	policy  *policy.Engine
	config  *config.Config
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service, pol *policy.Engine, cfg *config.Config) *Handler {
	return &Handler{
		service: service,
		policy:  pol,
		config:  cfg,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Chat widget API
	e.POST("/chat", h.Chat)
	e.GET("/conversation/:session_id", h.GetConversation)
	e.DELETE("/conversation/:session_id", h.DeleteConversation)
	e.POST("/conversation/:session_id/analyze-lead", h.AnalyzeLead)

	// Dashboard API
	e.GET("/sessions", h.ListSessions, h.requireAccess)
	e.GET("/debug/lead-analysis", h.DebugLeadAnalysis, h.requireAccess)

	e.GET("/health", h.Health)
}

// requireAccess evaluates the route-access policy before the handler runs.
func (h *Handler) requireAccess(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		allowed, err := h.policy.Allow(c.Request().Context(), policy.Input{
			Path:        c.Path(),
			Method:      c.Request().Method,
			ExposeDebug: h.config.ExposeDebug,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Policy evaluation failed"})
		}
		if !allowed {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Access denied"})
		}
		return next(c)
	}
}

// Health returns health status including a store probe.
// GET /health
func (h *Handler) Health(c echo.Context) error {
	ctx := c.Request().Context()

	count, err := h.service.ActiveSessions(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":    "ERROR",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"error":     "Database connection failed",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":         "OK",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"activeSessions": count,
		"database":       h.config.DatabaseDriver,
	})
}
