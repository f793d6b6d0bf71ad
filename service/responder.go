package service

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"gochat/model"
)

var (
	greetingRe  = regexp.MustCompile(`^(hi|hello|hey|greetings|good morning|good evening)`)
	howAreYouRe = regexp.MustCompile(`how are you|how're you|how r u`)
	nameRe      = regexp.MustCompile(`what is your name|what's your name|who are you`)
	helpRe      = regexp.MustCompile(`help|assist|support`)
	thanksRe    = regexp.MustCompile(`thank you|thanks|thx`)
	goodbyeRe   = regexp.MustCompile(`^(bye|goodbye|see you|farewell)`)
	abilityRe   = regexp.MustCompile(`what can you do|your capabilities|can you help`)
	mathRe      = regexp.MustCompile(`(\d+)\s*([+\-*/])\s*(\d+)`)
	weatherRe   = regexp.MustCompile(`weather`)
	timeRe      = regexp.MustCompile(`what time|current time|what date|today's date`)
	jokeRe      = regexp.MustCompile(`tell me a joke|make me laugh|joke`)
)

var greetingReplies = []string{
	"Hello! How can I help you today?",
	"Hi there! What can I do for you?",
	"Hey! Great to chat with you. What's on your mind?",
	"Greetings! How may I assist you?",
}

var jokeReplies = []string{
	"Why don't scientists trust atoms? Because they make up everything!",
	"Why did the programmer quit his job? Because he didn't get arrays!",
	"What do you call a bear with no teeth? A gummy bear!",
	"Why do programmers prefer dark mode? Because light attracts bugs!",
}

var genericReplies = []string{
	"That's interesting! Tell me more about that.",
	"I see what you mean. Can you elaborate on that?",
	"That's a good point! What else would you like to discuss?",
	"I understand. How can I help you with that?",
	"Interesting perspective! What made you think of that?",
	"I appreciate you sharing that. What would you like to know?",
}

const (
	howAreYouReply  = "I'm doing great, thank you for asking! I'm here to help you with anything you need. What can I do for you today?"
	identityReply   = "I'm an AI assistant created to help answer your questions and have meaningful conversations. You can ask me anything!"
	helpReply       = "I'm here to help! You can ask me questions, have a conversation, or discuss any topic you're interested in. What would you like to talk about?"
	thanksReply     = "You're welcome! Feel free to ask if you need anything else."
	goodbyeReply    = "Goodbye! It was nice chatting with you. Come back anytime!"
	abilityReply    = "I can chat with you about various topics, answer questions, provide information, and have meaningful conversations. Just ask me anything!"
	weatherReply    = "I don't have access to real-time weather data, but I'd be happy to chat about weather patterns or climate in general!"
	tellMoreReply   = "I'd be happy to provide more information! Could you be more specific about what aspect you'd like to know more about?"
	questionReply   = "That's an interesting question! While I may not have all the specific details, I'm here to help explore that topic with you. Could you provide more context?"
	longMsgReply    = "Thank you for sharing that detailed message! I understand you're discussing something important. How can I help you with this?"
	answerTemplate  = "The answer is %s."
	longMsgMinWords = 21
)

// rule is one entry of the ordered cascade. apply returns false to let the
// message fall through to the next rule.
type rule struct {
	name  string
	apply func(msg string, history []model.Message) (string, bool)
}

// Responder picks a canned reply for a message without calling any external
// service. Rules are evaluated in order and the first match wins.
type Responder struct {
	mu    sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
	rules []rule
}

// NewResponder builds the rule cascade. A nil rng gets a time-seeded source;
// tests inject a fixed seed to make reply picks reproducible.
func NewResponder(rng *rand.Rand) *Responder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	r := &Responder{rng: rng, now: time.Now}
	r.rules = []rule{
		{"greeting", r.pickReply(greetingRe, greetingReplies)},
		{"how_are_you", fixedReply(howAreYouRe, howAreYouReply)},
		{"identity", fixedReply(nameRe, identityReply)},
		{"help", fixedReply(helpRe, helpReply)},
		{"thanks", fixedReply(thanksRe, thanksReply)},
		{"goodbye", fixedReply(goodbyeRe, goodbyeReply)},
		{"capabilities", fixedReply(abilityRe, abilityReply)},
		{"arithmetic", arithmetic},
		{"weather", fixedReply(weatherRe, weatherReply)},
		{"time", r.timeOfDay},
		{"joke", r.pickReply(jokeRe, jokeReplies)},
		{"tell_me_more", tellMeMore},
		{"question", question},
		{"detailed", detailed},
	}
	return r
}

// Respond classifies the lowercased trimmed message against the cascade.
// history carries the turns before the current message, oldest first.
func (r *Responder) Respond(message string, history []model.Message) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	for _, rule := range r.rules {
		if reply, ok := rule.apply(msg, history); ok {
			return reply
		}
	}
	return r.pick(genericReplies)
}

func (r *Responder) pick(replies []string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return replies[r.rng.Intn(len(replies))]
}

func (r *Responder) pickReply(re *regexp.Regexp, replies []string) func(string, []model.Message) (string, bool) {
	return func(msg string, _ []model.Message) (string, bool) {
		if !re.MatchString(msg) {
			return "", false
		}
		return r.pick(replies), true
	}
}

func fixedReply(re *regexp.Regexp, reply string) func(string, []model.Message) (string, bool) {
	return func(msg string, _ []model.Message) (string, bool) {
		if !re.MatchString(msg) {
			return "", false
		}
		return reply, true
	}
}

// arithmetic answers messages containing "<int> <op> <int>". Evaluation
// errors (division by zero, overflow) decline the rule instead of failing.
func arithmetic(msg string, _ []model.Message) (string, bool) {
	m := mathRe.FindStringSubmatch(msg)
	if m == nil {
		return "", false
	}
	a, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return "", false
	}
	b, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return "", false
	}
	result, err := evalArithmetic(a, m[2], b)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf(answerTemplate, result), true
}

// evalArithmetic computes a simple two-operand expression. Operands are
// non-negative, the regex never captures a sign.
func evalArithmetic(a int64, op string, b int64) (string, error) {
	switch op {
	case "+":
		sum := a + b
		if sum < a {
			return "", errors.New("integer overflow")
		}
		return strconv.FormatInt(sum, 10), nil
	case "-":
		return strconv.FormatInt(a-b, 10), nil
	case "*":
		product := a * b
		if a != 0 && product/a != b {
			return "", errors.New("integer overflow")
		}
		return strconv.FormatInt(product, 10), nil
	case "/":
		if b == 0 {
			return "", errors.New("division by zero")
		}
		return strconv.FormatFloat(float64(a)/float64(b), 'f', -1, 64), nil
	}
	return "", fmt.Errorf("unsupported operator %q", op)
}

func (r *Responder) timeOfDay(msg string, _ []model.Message) (string, bool) {
	if !timeRe.MatchString(msg) {
		return "", false
	}
	now := r.now()
	return fmt.Sprintf("The current time is %s and today's date is %s.",
		now.Format("3:04:05 PM"), now.Format("1/2/2006")), true
}

// tellMeMore inspects the most recent historical turn, not the current
// message. A user who just wrote "tell me more" gets the elaboration prompt
// on their next message.
func tellMeMore(_ string, history []model.Message) (string, bool) {
	if len(history) == 0 {
		return "", false
	}
	last := history[len(history)-1]
	if last.Role == model.RoleUser && strings.Contains(strings.ToLower(last.Content), "tell me more") {
		return tellMoreReply, true
	}
	return "", false
}

func question(msg string, _ []model.Message) (string, bool) {
	if !strings.Contains(msg, "?") {
		return "", false
	}
	return questionReply, true
}

func detailed(msg string, _ []model.Message) (string, bool) {
	if len(strings.Fields(msg)) < longMsgMinWords {
		return "", false
	}
	return longMsgReply, true
}
