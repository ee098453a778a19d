// Package config loads application settings from defaults, an optional
// YAML file and FMAPREP_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"

	"github.com/abhisek/fmaprep/internal/llm"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "FMAPREP_"

type Config struct {
	// DB is the SQLite file. Empty means the XDG data-home default.
	DB string `mapstructure:"db" env:"DB"`

	// LogFile is the JSON log destination. Empty means the XDG state-home
	// default.
	LogFile  string `mapstructure:"log_file" env:"LOG_FILE"`
	LogLevel string `mapstructure:"log_level" env:"LOG_LEVEL"`

	// MathEngine names the math rendering engine: "unicode" or "none".
	MathEngine string `mapstructure:"math_engine" env:"MATH_ENGINE"`

	LLM llm.Config `mapstructure:"llm" envPrefix:"LLM_"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:   "info",
		MathEngine: "unicode",
		LLM:        llm.DefaultConfig(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/fmaprep/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "fmaprep", "config.yaml"), nil
}

// Load reads settings. An explicit path must exist; with an empty path
// the default location is used if present.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, Default())

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(p); err == nil {
			path = p
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("db", d.DB)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("math_engine", d.MathEngine)

	l := d.LLM
	v.SetDefault("llm.provider", l.Provider)
	v.SetDefault("llm.timeout", l.Timeout)
	v.SetDefault("llm.anthropic.model", l.Anthropic.Model)
	v.SetDefault("llm.openai.model", l.OpenAI.Model)
	v.SetDefault("llm.gemini.model", l.Gemini.Model)
	v.SetDefault("llm.openrouter.model", l.OpenRouter.Model)
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
}
