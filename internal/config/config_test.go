package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL", "PROVIDER_TIMEOUT",
		"MAX_CONTEXT_BYTES", "MAX_BODY_BYTES", "DATABASE_URL", "LOG_LEVEL",
		"GATEWAY_URL", "CHAT_TIMEOUT", "REDIS_URL", "TRANSCRIPT_TTL",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.HasProviderKey() {
		t.Error("expected no provider key")
	}
	if cfg.Provider.Model != defaultModel {
		t.Errorf("expected default model, got %q", cfg.Provider.Model)
	}
	if cfg.Provider.Timeout != 25*time.Second {
		t.Errorf("expected 25s provider timeout, got %s", cfg.Provider.Timeout)
	}
	if cfg.MaxContextBytes != 16<<10 {
		t.Errorf("unexpected MaxContextBytes %d", cfg.MaxContextBytes)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if cfg.Chat.GatewayURL != defaultGatewayURL {
		t.Errorf("unexpected gateway url %q", cfg.Chat.GatewayURL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OPENAI_API_KEY", "  sk-test  ")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("PROVIDER_TIMEOUT", "10s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.Provider.APIKey != "sk-test" {
		t.Errorf("expected trimmed key, got %q", cfg.Provider.APIKey)
	}
	if cfg.Provider.Model != "gpt-4o-mini" {
		t.Errorf("unexpected model %q", cfg.Provider.Model)
	}
	if cfg.Provider.Timeout != 10*time.Second {
		t.Errorf("expected 10s, got %s", cfg.Provider.Timeout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
	if cfg.Chat.RedisURL == "" {
		t.Error("expected redis url")
	}
}

func TestLoad_ProviderTimeoutClamped(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"100ms", time.Second},
		{"5m", 60 * time.Second},
		{"20s", 20 * time.Second},
	}
	for _, tt := range tests {
		t.Setenv("PROVIDER_TIMEOUT", tt.raw)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load(%s) failed: %v", tt.raw, err)
		}
		if cfg.Provider.Timeout != tt.want {
			t.Errorf("PROVIDER_TIMEOUT=%s: got %s, want %s", tt.raw, cfg.Provider.Timeout, tt.want)
		}
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("CHAT_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestValidate_RejectsBadSizes(t *testing.T) {
	t.Setenv("MAX_CONTEXT_BYTES", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero MAX_CONTEXT_BYTES")
	}
}
