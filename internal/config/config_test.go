package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "JWT_SECRET", "CORS_ALLOWED_ORIGINS", "PCBUILD_CONFIG",
		"LLM_PROVIDER", "LLM_TIMEOUT", "LLM_TEMPERATURE", "LLM_MAX_TOKENS",
		"AZURE_OPENAI_ENDPOINT", "AZURE_OPENAI_API_KEY", "AZURE_OPENAI_DEPLOYMENT", "AZURE_OPENAI_API_VERSION",
		"GEMINI_API_KEY", "GEMINI_MODEL", "CHROME_BIN", "CHROME_NO_SANDBOX",
		"R2_ENDPOINT", "R2_ACCESS_KEY", "R2_SECRET_KEY", "R2_BUCKET_NAME", "R2_PUBLIC_BASE_URL",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("APP_ENV", "production")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ProviderAzure, cfg.LLM.Provider)
	assert.Equal(t, 90*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.R2.Enabled())
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "pcbuild.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
llm:
  provider: gemini
  timeout: 45s
  gemini:
    model: gemini-from-file
r2:
  bucket: reports
`), 0o600))

	t.Setenv("GEMINI_MODEL", "gemini-from-env")
	t.Setenv("LLM_MAX_TOKENS", "2000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "gemini-from-env", cfg.LLM.Gemini.Model)
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
	assert.Equal(t, "reports", cfg.R2.Bucket)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_TEMPERATURE", "warm")

	_, err := Load("")
	assert.Error(t, err)
}

func TestRequireBackend(t *testing.T) {
	t.Run("azure missing both", func(t *testing.T) {
		cfg := Default()
		err := cfg.RequireBackend()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AZURE_OPENAI_ENDPOINT")
		assert.Contains(t, err.Error(), "AZURE_OPENAI_API_KEY")
	})

	t.Run("azure configured", func(t *testing.T) {
		cfg := Default()
		cfg.LLM.Azure.Endpoint = "https://example.openai.azure.com/"
		cfg.LLM.Azure.APIKey = "key"
		assert.NoError(t, cfg.RequireBackend())
	})

	t.Run("gemini missing key", func(t *testing.T) {
		cfg := Default()
		cfg.LLM.Provider = ProviderGemini
		assert.ErrorContains(t, cfg.RequireBackend(), "GEMINI_API_KEY")
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := Default()
		cfg.LLM.Provider = "llama"
		assert.Error(t, cfg.RequireBackend())
	})
}

func TestStatusNeverExposesSecrets(t *testing.T) {
	cfg := Default()
	cfg.LLM.Azure.Endpoint = "https://contoso.openai.azure.com/openai"
	cfg.LLM.Azure.APIKey = "super-secret"

	status := cfg.Status()
	assert.True(t, status.HasEndpoint)
	assert.True(t, status.HasAPIKey)
	assert.Equal(t, "contoso.openai.azure.com", status.EndpointDomain)
	assert.Equal(t, "gpt-4 (default)", status.Deployment)

	cfg.LLM.Azure.Deployment = "gpt-4o"
	assert.Equal(t, "gpt-4o", cfg.Status().Deployment)

	empty := Default().Status()
	assert.Equal(t, "not set", empty.EndpointDomain)
	assert.False(t, empty.HasAPIKey)
}
