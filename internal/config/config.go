// Package config reads process configuration once at startup.
//
// Precedence, lowest first: built-in defaults, an optional YAML file, then
// environment variables (a .env file is loaded outside production).
package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderAzure  = "azure"
	ProviderGemini = "gemini"

	DefaultDeployment  = "gpt-4"
	DefaultGeminiModel = "gemini-2.5-flash"
)

type Config struct {
	Env         string   `yaml:"env"`
	Port        string   `yaml:"port"`
	LogLevel    string   `yaml:"log_level"`
	CORSOrigins []string `yaml:"cors_allowed_origins"`
	JWTSecret   string   `yaml:"jwt_secret"`

	LLM    LLMConfig    `yaml:"llm"`
	Chrome ChromeConfig `yaml:"chrome"`
	R2     R2Config     `yaml:"r2"`
}

type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	Timeout     time.Duration `yaml:"timeout"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`

	Azure  AzureConfig  `yaml:"azure"`
	Gemini GeminiConfig `yaml:"gemini"`
}

type AzureConfig struct {
	Endpoint   string `yaml:"endpoint"`
	APIKey     string `yaml:"api_key"`
	Deployment string `yaml:"deployment"`
	APIVersion string `yaml:"api_version"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type ChromeConfig struct {
	Bin       string        `yaml:"bin"`
	NoSandbox bool          `yaml:"no_sandbox"`
	Timeout   time.Duration `yaml:"timeout"`
}

// R2Config points at the S3-compatible bucket used for report export.
type R2Config struct {
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	Bucket        string `yaml:"bucket"`
	PublicBaseURL string `yaml:"public_base_url"`
}

// Enabled reports whether enough of the bucket is configured to upload.
func (r R2Config) Enabled() bool {
	return r.Endpoint != "" && r.AccessKey != "" && r.SecretKey != "" && r.Bucket != ""
}

func Default() *Config {
	return &Config{
		Env:         "development",
		Port:        "8080",
		LogLevel:    "info",
		CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		LLM: LLMConfig{
			Provider:    ProviderAzure,
			Timeout:     90 * time.Second,
			Temperature: 0.7,
			MaxTokens:   4000,
		},
		Chrome: ChromeConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// Load builds the configuration. path may be empty, in which case
// PCBUILD_CONFIG is consulted; with neither set no file is read.
func Load(path string) (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: could not read .env file: %v", err)
		}
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("PCBUILD_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	setString(&c.Env, "APP_ENV")
	setString(&c.Port, "PORT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.JWTSecret, "JWT_SECRET")
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORSOrigins = splitCSV(v)
	}

	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Azure.Endpoint, "AZURE_OPENAI_ENDPOINT")
	setString(&c.LLM.Azure.APIKey, "AZURE_OPENAI_API_KEY")
	setString(&c.LLM.Azure.Deployment, "AZURE_OPENAI_DEPLOYMENT")
	setString(&c.LLM.Azure.APIVersion, "AZURE_OPENAI_API_VERSION")
	setString(&c.LLM.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&c.LLM.Gemini.Model, "GEMINI_MODEL")

	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LLM_TIMEOUT: %w", err)
		}
		c.LLM.Timeout = d
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("LLM_TEMPERATURE: %w", err)
		}
		c.LLM.Temperature = float32(f)
	}
	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LLM_MAX_TOKENS: %w", err)
		}
		c.LLM.MaxTokens = n
	}

	setString(&c.Chrome.Bin, "CHROME_BIN")
	if v := os.Getenv("CHROME_NO_SANDBOX"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CHROME_NO_SANDBOX: %w", err)
		}
		c.Chrome.NoSandbox = b
	}

	setString(&c.R2.Endpoint, "R2_ENDPOINT")
	setString(&c.R2.AccessKey, "R2_ACCESS_KEY")
	setString(&c.R2.SecretKey, "R2_SECRET_KEY")
	setString(&c.R2.Bucket, "R2_BUCKET_NAME")
	setString(&c.R2.PublicBaseURL, "R2_PUBLIC_BASE_URL")
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// RequireBackend returns an error naming every variable the selected
// provider still needs.
func (c *Config) RequireBackend() error {
	var missing []string

	switch c.LLM.Provider {
	case ProviderAzure, "":
		if c.LLM.Azure.Endpoint == "" {
			missing = append(missing, "AZURE_OPENAI_ENDPOINT")
		}
		if c.LLM.Azure.APIKey == "" {
			missing = append(missing, "AZURE_OPENAI_API_KEY")
		}
	case ProviderGemini:
		if c.LLM.Gemini.APIKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// BackendStatus describes the configured backend without exposing secrets.
type BackendStatus struct {
	Provider       string `json:"provider"`
	HasEndpoint    bool   `json:"hasEndpoint"`
	EndpointDomain string `json:"endpointDomain"`
	HasAPIKey      bool   `json:"hasApiKey"`
	Deployment     string `json:"deployment"`
}

func (c *Config) Status() BackendStatus {
	if c.LLM.Provider == ProviderGemini {
		model := c.LLM.Gemini.Model
		if model == "" {
			model = DefaultGeminiModel + " (default)"
		}
		return BackendStatus{
			Provider:       ProviderGemini,
			HasEndpoint:    true,
			EndpointDomain: "generativelanguage.googleapis.com",
			HasAPIKey:      c.LLM.Gemini.APIKey != "",
			Deployment:     model,
		}
	}

	deployment := c.LLM.Azure.Deployment
	if deployment == "" {
		deployment = DefaultDeployment + " (default)"
	}
	return BackendStatus{
		Provider:       ProviderAzure,
		HasEndpoint:    c.LLM.Azure.Endpoint != "",
		EndpointDomain: endpointDomain(c.LLM.Azure.Endpoint),
		HasAPIKey:      c.LLM.Azure.APIKey != "",
		Deployment:     deployment,
	}
}

func endpointDomain(endpoint string) string {
	if endpoint == "" {
		return "not set"
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return "invalid"
	}
	return u.Hostname()
}
