package platform

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// OpenAI-compatible provider; used when LLM_BASE_URL is set
	LLMBaseURL string `env:"LLM_BASE_URL"`
	LLMAPIKey  string `env:"LLM_API_KEY"`
	LLMModel   string `env:"LLM_MODEL" envDefault:"qwen-turbo"`

	// HuggingFace-style conversational endpoint
	GenerateURL     string        `env:"GENERATE_URL" envDefault:"https://api-inference.huggingface.co/models/microsoft/DialoGPT-large"`
	GenerateTimeout time.Duration `env:"GENERATE_TIMEOUT" envDefault:"10s"`

	HistoryLimit int `env:"HISTORY_LIMIT" envDefault:"10"`
}

func LoadConfig() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
