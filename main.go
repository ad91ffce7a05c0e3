package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/adapter/llm"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/config"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/service"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/store"
	handler "github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/transport/http"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting chatbot backend...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s (%s)", cfg.DatabaseURL, cfg.DatabaseDriver)
	log.Printf("Model: %s", cfg.Model)

	ctx := context.Background()

	// Initialize store
	db, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize completion client
	llmClient := llm.NewCompletionClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model, cfg.LLMTimeout)

	// Initialize route-access policy engine
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize service
	svc := service.New(db, llmClient, cfg)

	// Create server
	server := handler.NewServer(svc, policyEngine, cfg)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Chatbot backend started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down chatbot backend...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Chatbot backend stopped")
}

func newStore(ctx context.Context, cfg *config.Config) (store.ConversationStore, error) {
	switch cfg.DatabaseDriver {
	case "postgres":
		return store.NewPostgresStore(ctx, cfg.DatabaseURL)
	default:
		return store.NewSQLiteStore(cfg.DatabaseURL)
	}
}
