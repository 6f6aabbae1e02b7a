package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.Anthropic.MaxTokens != 4096 {
		t.Errorf("Anthropic.MaxTokens = %d, want 4096", cfg.Anthropic.MaxTokens)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_MODEL", "test-model")
	t.Setenv("ANTHROPIC_MAX_TOKENS", "2048")
	t.Setenv("GENCACHE_DIR", "/tmp/gencache")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.Anthropic.APIKey != "sk-test" {
		t.Errorf("Anthropic.APIKey = %q", cfg.Anthropic.APIKey)
	}
	if cfg.Anthropic.Model != "test-model" {
		t.Errorf("Anthropic.Model = %q", cfg.Anthropic.Model)
	}
	if cfg.Anthropic.MaxTokens != 2048 {
		t.Errorf("Anthropic.MaxTokens = %d", cfg.Anthropic.MaxTokens)
	}
	if cfg.GenCacheDir != "/tmp/gencache" {
		t.Errorf("GenCacheDir = %q", cfg.GenCacheDir)
	}
}

func TestValidateWorker(t *testing.T) {
	var cfg Config
	if err := cfg.ValidateWorker(); err == nil {
		t.Error("expected error without api key")
	}
	cfg.Anthropic.APIKey = "sk-test"
	if err := cfg.ValidateWorker(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
