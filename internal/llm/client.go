package llm

import (
	"context"
	"fmt"

	"pcbuild/internal/config"
)

// Prompt is one system + user exchange sent to the backend.
type Prompt struct {
	System    string
	User      string
	MaxTokens int
}

// Client produces raw completion text. Implementations return *ServiceError
// for every failure; they do not retry.
type Client interface {
	GenerateText(ctx context.Context, prompt Prompt) (string, error)
	Provider() string
}

// NewClient builds the client for cfg.Provider. Missing credentials are an
// error here so that callers can fail at startup.
func NewClient(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case config.ProviderAzure, "":
		return NewAzureClient(cfg)
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
