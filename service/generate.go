package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openai/openai-go"

	"gochat/model"
)

// Generator produces a reply from a remote text-generation endpoint. Any
// error switches the caller to the fallback responder.
type Generator interface {
	Generate(ctx context.Context, message string, history []model.Message) (string, error)
}

// HFGenerator posts the conversation to a HuggingFace-style conversational
// endpoint.
type HFGenerator struct {
	url    string
	client *http.Client
}

func NewHFGenerator(url string, timeout time.Duration) *HFGenerator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HFGenerator{url: url, client: &http.Client{Timeout: timeout}}
}

type hfInputs struct {
	PastUserInputs     []string `json:"past_user_inputs"`
	GeneratedResponses []string `json:"generated_responses"`
	Text               string   `json:"text"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfRequest struct {
	Inputs  hfInputs  `json:"inputs"`
	Options hfOptions `json:"options"`
}

func (g *HFGenerator) Generate(ctx context.Context, message string, history []model.Message) (string, error) {
	payload := hfRequest{
		Inputs: hfInputs{
			PastUserInputs:     lastContents(history, model.RoleUser, 5),
			GeneratedResponses: lastContents(history, model.RoleAssistant, 5),
			Text:               message,
		},
		Options: hfOptions{WaitForModel: true},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call generation endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var out struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if out.GeneratedText == "" {
		return "", errors.New("response missing generated_text")
	}
	return out.GeneratedText, nil
}

// lastContents collects the last limit contents of one role, oldest first.
func lastContents(history []model.Message, role model.Role, limit int) []string {
	out := make([]string, 0, limit)
	for _, m := range history {
		if m.Role == role {
			out = append(out, m.Content)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// LLMGenerator runs the conversation through an OpenAI-compatible chat
// completion endpoint.
type LLMGenerator struct {
	client *openai.Client
	model  string
}

func NewLLMGenerator(client *openai.Client, llmModel string) *LLMGenerator {
	return &LLMGenerator{client: client, model: llmModel}
}

func (g *LLMGenerator) Generate(ctx context.Context, message string, history []model.Message) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage("You are a helpful assistant."),
	}
	for _, m := range history {
		if m.Role == model.RoleAssistant {
			messages = append(messages, openai.AssistantMessage(m.Content))
		} else {
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	messages = append(messages, openai.UserMessage(message))

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F(messages),
		Model:    openai.F(g.model),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
