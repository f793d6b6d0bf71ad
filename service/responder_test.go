package service

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"gochat/model"
)

func newTestResponder(seed int64) *Responder {
	r := NewResponder(rand.New(rand.NewSource(seed)))
	r.now = func() time.Time {
		return time.Date(2025, 3, 9, 15, 4, 5, 0, time.UTC)
	}
	return r
}

func isOneOf(reply string, set []string) bool {
	for _, s := range set {
		if reply == s {
			return true
		}
	}
	return false
}

func TestRespondDeterministicWithFixedSeed(t *testing.T) {
	first := newTestResponder(7).Respond("hello", nil)
	second := newTestResponder(7).Respond("hello", nil)

	if first != second {
		t.Fatalf("expected identical replies for same seed, got %q and %q", first, second)
	}
	if !isOneOf(first, greetingReplies) {
		t.Fatalf("expected a greeting reply, got %q", first)
	}
}

func TestGreetingBeatsTimeRule(t *testing.T) {
	reply := newTestResponder(1).Respond("hi, what time is it?", nil)
	if !isOneOf(reply, greetingReplies) {
		t.Fatalf("expected greeting to win over time rule, got %q", reply)
	}
}

func TestFixedReplies(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"how are you doing", howAreYouReply},
		{"who are you", identityReply},
		{"can you help me out", helpReply},
		{"thanks a lot", thanksReply},
		{"bye for now", goodbyeReply},
		{"what can you do", abilityReply},
		{"is it sunny weather today", weatherReply},
	}
	r := newTestResponder(1)
	for _, tc := range cases {
		if got := r.Respond(tc.message, nil); got != tc.want {
			t.Fatalf("Respond(%q) = %q, want %q", tc.message, got, tc.want)
		}
	}
}

func TestArithmetic(t *testing.T) {
	r := newTestResponder(1)

	if got := r.Respond("what is 7 + 3", nil); got != "The answer is 10." {
		t.Fatalf("unexpected reply: %q", got)
	}
	if got := r.Respond("6 * 7", nil); got != "The answer is 42." {
		t.Fatalf("unexpected reply: %q", got)
	}
	if got := r.Respond("what is 10 / 4", nil); got != "The answer is 2.5." {
		t.Fatalf("unexpected reply: %q", got)
	}
	if got := r.Respond("100 - 1", nil); got != "The answer is 99." {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestDivisionByZeroFallsThrough(t *testing.T) {
	reply := newTestResponder(1).Respond("10 / 0", nil)
	if !isOneOf(reply, genericReplies) {
		t.Fatalf("expected generic reply after fall-through, got %q", reply)
	}
}

func TestOverflowFallsThrough(t *testing.T) {
	reply := newTestResponder(1).Respond("9223372036854775807 + 1", nil)
	if !isOneOf(reply, genericReplies) {
		t.Fatalf("expected generic reply after overflow, got %q", reply)
	}
}

func TestTimeRuleUsesInjectedClock(t *testing.T) {
	reply := newTestResponder(1).Respond("what time is it right now", nil)
	want := "The current time is 3:04:05 PM and today's date is 3/9/2025."
	if reply != want {
		t.Fatalf("unexpected time reply: %q", reply)
	}
}

func TestJokeRule(t *testing.T) {
	reply := newTestResponder(1).Respond("tell me a joke", nil)
	if !isOneOf(reply, jokeReplies) {
		t.Fatalf("expected a joke, got %q", reply)
	}
}

func TestContextRuleChecksPreviousTurn(t *testing.T) {
	history := []model.Message{
		{Role: model.RoleUser, Content: "Tell me MORE"},
	}
	reply := newTestResponder(1).Respond("ok", history)
	if reply != tellMoreReply {
		t.Fatalf("expected elaboration reply, got %q", reply)
	}

	// assistant turn last: rule must not fire
	history = []model.Message{
		{Role: model.RoleUser, Content: "tell me more"},
		{Role: model.RoleAssistant, Content: "about what?"},
	}
	reply = newTestResponder(1).Respond("ok", history)
	if reply == tellMoreReply {
		t.Fatalf("context rule fired on assistant turn")
	}
}

func TestQuestionRule(t *testing.T) {
	reply := newTestResponder(1).Respond("is the sky blue?", nil)
	if reply != questionReply {
		t.Fatalf("expected question reply, got %q", reply)
	}
}

func TestDetailedMessageBoundary(t *testing.T) {
	words := make([]string, 21)
	for i := range words {
		words[i] = "word"
	}

	reply := newTestResponder(1).Respond(strings.Join(words, " "), nil)
	if reply != longMsgReply {
		t.Fatalf("expected detailed-message reply for 21 tokens, got %q", reply)
	}

	reply = newTestResponder(1).Respond(strings.Join(words[:20], " "), nil)
	if !isOneOf(reply, genericReplies) {
		t.Fatalf("expected generic reply for 20 tokens, got %q", reply)
	}
}
