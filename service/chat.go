package service

import (
	"context"
	"time"

	"gochat/model"
	"gochat/platform"
)

var logger = platform.Logger

// ChatService orchestrates one chat exchange: it persists the user message,
// tries the external generator and falls back to the rule-based responder.
type ChatService struct {
	store        *model.Store
	generator    Generator
	responder    *Responder
	historyLimit int
	timeout      time.Duration
}

func NewChatService(store *model.Store, generator Generator, responder *Responder, cfg *platform.Config) *ChatService {
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = 10
	}
	timeout := cfg.GenerateTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ChatService{
		store:        store,
		generator:    generator,
		responder:    responder,
		historyLimit: limit,
		timeout:      timeout,
	}
}

// HandleUserMessage saves the incoming message, produces a reply and saves
// it. Exactly two messages are stored per call whichever branch replied.
func (s *ChatService) HandleUserMessage(ctx context.Context, user model.User, message string) string {
	s.store.SaveMessage(user.ID, model.RoleUser, message)

	history := s.store.GetChatHistory(user.ID, s.historyLimit)
	// drop the turn just saved so the responder only sees prior turns
	if n := len(history); n > 0 && history[n-1].Role == model.RoleUser && history[n-1].Content == message {
		history = history[:n-1]
	}

	reply := s.generate(ctx, message, history)

	s.store.SaveMessage(user.ID, model.RoleAssistant, reply)
	return reply
}

// generate tries the external endpoint under a bounded wait. No store lock
// is held while waiting; any failure ends up in the fallback responder.
func (s *ChatService) generate(ctx context.Context, message string, history []model.Message) string {
	if s.generator != nil {
		genCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		reply, err := s.generator.Generate(genCtx, message, history)
		if err == nil {
			return reply
		}
		logger.Warnf("generation call failed, using fallback: %s", err)
	}
	return s.responder.Respond(message, history)
}
