// Package http provides the HTTP server for the chatbot backend.
package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/config"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/service"
	v1 "github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/transport/http/v1"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/policy"
)

// NewServer creates and configures the HTTP server. CORS is permissive unless
// allowed origins are configured; permissive mode is only appropriate behind
// a trusted deployment boundary.
func NewServer(svc *service.Service, pol *policy.Engine, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.AllowedOrigins,
		}))
	} else {
		e.Use(middleware.CORS())
	}

	// Handlers
	handler := v1.NewHandler(svc, pol, cfg)
	handler.RegisterRoutes(e)

	return e
}
