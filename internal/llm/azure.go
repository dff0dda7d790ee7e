package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sashabaranov/go-openai"

	"pcbuild/internal/config"
)

// AzureClient talks to an Azure OpenAI chat deployment.
type AzureClient struct {
	client      *openai.Client
	deployment  string
	temperature float32
	maxTokens   int
	timeout     time.Duration
}

func NewAzureClient(cfg config.LLMConfig) (*AzureClient, error) {
	if cfg.Azure.Endpoint == "" || cfg.Azure.APIKey == "" {
		return nil, errors.New("azure openai endpoint and api key must be configured")
	}

	deployment := cfg.Azure.Deployment
	if deployment == "" {
		deployment = config.DefaultDeployment
	}

	oc := openai.DefaultAzureConfig(cfg.Azure.APIKey, strings.TrimRight(cfg.Azure.Endpoint, "/"))
	if cfg.Azure.APIVersion != "" {
		oc.APIVersion = cfg.Azure.APIVersion
	}
	// The request model is the deployment name; never rewrite it.
	oc.AzureModelMapperFunc = func(string) string { return deployment }
	oc.HTTPClient = &http.Client{}

	return &AzureClient{
		client:      openai.NewClientWithConfig(oc),
		deployment:  deployment,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
	}, nil
}

func (c *AzureClient) Provider() string {
	return config.ProviderAzure
}

func (c *AzureClient) GenerateText(ctx context.Context, prompt Prompt) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	maxTokens := prompt.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		Temperature: c.temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", c.fail(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &ServiceError{Provider: c.Provider(), Op: "chat completion", Err: ErrEmptyCompletion}
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *AzureClient) fail(err error) *ServiceError {
	serr := &ServiceError{Provider: c.Provider(), Op: "chat completion"}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		serr.StatusCode = apiErr.HTTPStatusCode
		serr.Err = eris.Wrapf(err, "deployment %s rejected the request", c.deployment)
	case errors.As(err, &reqErr):
		// JSON body that is not an OpenAI error document.
		serr.StatusCode = reqErr.HTTPStatusCode
		serr.Err = eris.Wrap(err, "backend returned an unrecognized error response")
	default:
		if code, ok := nonJSONStatus(err); ok {
			serr.StatusCode = code
			serr.Err = eris.Wrap(err, "backend returned a non-JSON error response, likely a gateway error page")
			return serr
		}
		serr.Err = eris.Wrap(err, "backend unreachable")
	}
	return serr
}

// nonJSONStatus recovers the HTTP status from the untyped error go-openai
// returns when an error response is not application/json.
func nonJSONStatus(err error) (int, bool) {
	var code int
	if _, scanErr := fmt.Sscanf(err.Error(), nonJSONErrorFormat, &code); scanErr != nil || code == 0 {
		return 0, false
	}
	return code, true
}

const nonJSONErrorFormat = "error, status code: %d,"
