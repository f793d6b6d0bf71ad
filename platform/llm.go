package platform

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// NewLLMClient 初始化 OpenAI 兼容客户端
func NewLLMClient(cfg *Config) *openai.Client {
	return openai.NewClient(
		option.WithBaseURL(cfg.LLMBaseURL),
		option.WithAPIKey(cfg.LLMAPIKey),
	)
}
