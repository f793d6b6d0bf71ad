package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gochat/model"
	"gochat/platform"
)

type failingGenerator struct{}

func (failingGenerator) Generate(ctx context.Context, message string, history []model.Message) (string, error) {
	return "", errors.New("upstream unavailable")
}

type stubGenerator struct {
	reply   string
	err     error
	message string
	history []model.Message
}

func (g *stubGenerator) Generate(ctx context.Context, message string, history []model.Message) (string, error) {
	g.message = message
	g.history = history
	return g.reply, g.err
}

func newTestChatService(store *model.Store, gen Generator) *ChatService {
	cfg := &platform.Config{HistoryLimit: 10, GenerateTimeout: time.Second}
	return NewChatService(store, gen, newTestResponder(1), cfg)
}

func TestHandleUserMessageFallbackPersistsTwoTurns(t *testing.T) {
	store := model.NewStore()
	svc := newTestChatService(store, failingGenerator{})

	user := store.GetOrCreateUser("alice")
	reply := svc.HandleUserMessage(context.Background(), user, "hello")

	if reply == "" {
		t.Fatalf("expected non-empty reply")
	}
	if !isOneOf(reply, greetingReplies) {
		t.Fatalf("expected a greeting reply, got %q", reply)
	}

	history := store.GetChatHistory(user.ID, 10)
	if len(history) != 2 {
		t.Fatalf("expected exactly 2 persisted turns, got %d", len(history))
	}
	if history[0].Role != model.RoleUser || history[0].Content != "hello" {
		t.Fatalf("unexpected user turn: %+v", history[0])
	}
	if history[1].Role != model.RoleAssistant || history[1].Content != reply {
		t.Fatalf("unexpected assistant turn: %+v", history[1])
	}
}

func TestHandleUserMessageUsesGeneratorReply(t *testing.T) {
	store := model.NewStore()
	gen := &stubGenerator{reply: "generated text"}
	svc := newTestChatService(store, gen)

	user := store.GetOrCreateUser("alice")
	reply := svc.HandleUserMessage(context.Background(), user, "hello")

	if reply != "generated text" {
		t.Fatalf("expected generator reply, got %q", reply)
	}
	history := store.GetChatHistory(user.ID, 10)
	if len(history) != 2 || history[1].Content != "generated text" {
		t.Fatalf("expected generator reply persisted, got %+v", history)
	}
}

func TestHandleUserMessageNilGenerator(t *testing.T) {
	store := model.NewStore()
	svc := newTestChatService(store, nil)

	user := store.GetOrCreateUser("alice")
	reply := svc.HandleUserMessage(context.Background(), user, "tell me a joke")

	if !isOneOf(reply, jokeReplies) {
		t.Fatalf("expected fallback joke, got %q", reply)
	}
}

func TestGeneratorSeesOnlyPriorTurns(t *testing.T) {
	store := model.NewStore()
	gen := &stubGenerator{err: errors.New("force fallback")}
	svc := newTestChatService(store, gen)

	user := store.GetOrCreateUser("alice")
	svc.HandleUserMessage(context.Background(), user, "first message")

	if len(gen.history) != 0 {
		t.Fatalf("expected empty context on first exchange, got %d turns", len(gen.history))
	}

	svc.HandleUserMessage(context.Background(), user, "second message")

	if gen.message != "second message" {
		t.Fatalf("unexpected message: %q", gen.message)
	}
	if len(gen.history) != 2 {
		t.Fatalf("expected 2 prior turns in context, got %d", len(gen.history))
	}
	if gen.history[0].Content != "first message" || gen.history[1].Role != model.RoleAssistant {
		t.Fatalf("unexpected context: %+v", gen.history)
	}
}

func TestContextRuleAcrossExchange(t *testing.T) {
	store := model.NewStore()
	svc := newTestChatService(store, nil)

	user := store.GetOrCreateUser("alice")
	svc.HandleUserMessage(context.Background(), user, "tell me more")
	// the assistant's reply is now the most recent history entry, so the
	// elaboration rule must not fire on the next exchange
	reply := svc.HandleUserMessage(context.Background(), user, "ok then")

	if reply == tellMoreReply {
		t.Fatalf("context rule fired although last turn was the assistant's")
	}
}
