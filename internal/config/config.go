// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultModel      = "gpt-4.1-2025-04-14"
	minProviderWait   = time.Second
	maxProviderWait   = 60 * time.Second
	defaultGatewayURL = "http://localhost:8080/nutrition-ai"
)

// Config holds all application configuration. It is read once at process
// start and never mutated afterwards.
type Config struct {
	Port            string
	LogLevel        slog.Level
	Provider        ProviderConfig
	MaxContextBytes int
	MaxBodyBytes    int64
	DatabaseURL     string
	Chat            ChatConfig
}

// ProviderConfig describes the remote model provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// ChatConfig is used by the terminal chat client.
type ChatConfig struct {
	GatewayURL    string
	Timeout       time.Duration
	RedisURL      string
	TranscriptTTL time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	providerTimeout, err := getEnvDuration("PROVIDER_TIMEOUT", 25*time.Second)
	if err != nil {
		return nil, err
	}
	chatTimeout, err := getEnvDuration("CHAT_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	transcriptTTL, err := getEnvDuration("TRANSCRIPT_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: parseLevel(getEnv("LOG_LEVEL", "info")),
		Provider: ProviderConfig{
			APIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			Model:   getEnv("OPENAI_MODEL", defaultModel),
			BaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
			Timeout: clampDuration(providerTimeout, minProviderWait, maxProviderWait),
		},
		MaxContextBytes: getEnvInt("MAX_CONTEXT_BYTES", 16<<10),
		MaxBodyBytes:    int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Chat: ChatConfig{
			GatewayURL:    getEnv("GATEWAY_URL", defaultGatewayURL),
			Timeout:       chatTimeout,
			RedisURL:      strings.TrimSpace(os.Getenv("REDIS_URL")),
			TranscriptTTL: transcriptTTL,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
// A missing provider key is allowed: the gateway then answers every
// request from its degraded path.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.Provider.Model == "" {
		return fmt.Errorf("OPENAI_MODEL cannot be empty")
	}
	if c.MaxContextBytes <= 0 {
		return fmt.Errorf("MAX_CONTEXT_BYTES must be > 0")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be > 0")
	}
	if c.Chat.GatewayURL == "" {
		return fmt.Errorf("GATEWAY_URL cannot be empty")
	}
	if c.Chat.Timeout <= 0 {
		return fmt.Errorf("CHAT_TIMEOUT must be > 0")
	}
	return nil
}

// HasProviderKey reports whether a provider credential was supplied.
func (c *Config) HasProviderKey() bool {
	return c.Provider.APIKey != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
