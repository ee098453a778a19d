package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures a provider. Tags bind it to the YAML
// config file (mapstructure) and to FMAPREP_LLM_* variables (env).
type Config struct {
	// Provider is empty when the tutor is disabled.
	Provider string `mapstructure:"provider" env:"PROVIDER"`

	Anthropic  AnthropicConfig  `mapstructure:"anthropic" envPrefix:"ANTHROPIC_"`
	OpenAI     OpenAIConfig     `mapstructure:"openai" envPrefix:"OPENAI_"`
	Gemini     GeminiConfig     `mapstructure:"gemini" envPrefix:"GEMINI_"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter" envPrefix:"OPENROUTER_"`
	Retry      RetryConfig      `mapstructure:"retry" envPrefix:"RETRY_"`

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration `mapstructure:"timeout" env:"TIMEOUT"`
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key" env:"API_KEY"`
	Model  string `mapstructure:"model" env:"MODEL"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key" env:"API_KEY"`
	Model   string `mapstructure:"model" env:"MODEL"`
	BaseURL string `mapstructure:"base_url" env:"BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key" env:"API_KEY"`
	Model  string `mapstructure:"model" env:"MODEL"`
}

type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key" env:"API_KEY"`
	Model   string `mapstructure:"model" env:"MODEL"`
	BaseURL string `mapstructure:"base_url" env:"BASE_URL"`
}

// RetryConfig controls exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" env:"MAX_ATTEMPTS"`
	InitialWait time.Duration `mapstructure:"initial_wait" env:"INITIAL_WAIT"`
	MaxWait     time.Duration `mapstructure:"max_wait" env:"MAX_WAIT"`
	Multiplier  float64       `mapstructure:"multiplier" env:"MULTIPLIER"`
}

// DefaultConfig returns a disabled config with model and retry defaults
// filled in.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 45 * time.Second,
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool { return c.Provider != "" }

// Discover fills in the provider from the vendors' standard API key
// variables when none is selected. It returns false if nothing was found.
// Order: Gemini, OpenAI, Anthropic, OpenRouter.
func (c *Config) Discover() bool {
	if c.Enabled() {
		return true
	}
	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &c.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &c.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &c.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &c.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			c.Provider = p.provider
			if *p.key == "" {
				*p.key = k
			}
			return true
		}
	}
	return false
}

// Validate checks that the selected provider has a key.
func (c Config) Validate() error {
	var key, name string
	switch c.Provider {
	case ProviderAnthropic:
		key, name = c.Anthropic.APIKey, "ANTHROPIC"
	case ProviderOpenAI:
		key, name = c.OpenAI.APIKey, "OPENAI"
	case ProviderGemini:
		key, name = c.Gemini.APIKey, "GEMINI"
	case ProviderOpenRouter:
		key, name = c.OpenRouter.APIKey, "OPENROUTER"
	case ProviderMock:
		return nil
	case "":
		return fmt.Errorf("no LLM provider configured")
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("FMAPREP_LLM_%s_API_KEY is required for the %s provider", name, c.Provider)
	}
	return nil
}
