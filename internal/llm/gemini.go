package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"google.golang.org/genai"

	"pcbuild/internal/config"
)

type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
}

func NewGeminiClient(ctx context.Context, cfg config.LLMConfig) (*GeminiClient, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}

	model := cfg.Gemini.Model
	if model == "" {
		model = config.DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, eris.Wrap(err, "create gemini client")
	}

	return &GeminiClient{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
	}, nil
}

func (g *GeminiClient) Provider() string {
	return config.ProviderGemini
}

// GenerateText asks Gemini for a JSON-only answer.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt Prompt) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	maxTokens := prompt.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.maxTokens
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt.User), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
		Temperature:       genai.Ptr(g.temperature),
		MaxOutputTokens:   int32(maxTokens),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		serr := &ServiceError{Provider: g.Provider(), Op: "generate content", Err: eris.Wrapf(err, "model %s", g.model)}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			serr.StatusCode = apiErr.Code
		}
		return "", serr
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &ServiceError{Provider: g.Provider(), Op: "generate content", Err: ErrEmptyCompletion}
	}
	return text, nil
}
