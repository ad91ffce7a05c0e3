// Package service implements the conversation lifecycle and lead extraction.
package service

import (
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/adapter/llm"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/config"
	"github.com/nhatnampham1403/serverless-website-chatbot-nam/internal/store"
)

type Service struct {
	store     store.ConversationStore
	llmClient llm.CompletionClient
	config    *config.Config
}

func New(store store.ConversationStore, llmClient llm.CompletionClient, cfg *config.Config) *Service {
	return &Service{
		store:     store,
		llmClient: llmClient,
		config:    cfg,
	}
}
