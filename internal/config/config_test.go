package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("SDK_KEY", "key-123")
	t.Setenv("PORT", "9999")
	t.Setenv("SDK_TIMEOUT", "3s")
	t.Setenv("REDIS_URL", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9999")
	}
	if cfg.SDK.Key != "key-123" {
		t.Errorf("SDK.Key = %q, want %q", cfg.SDK.Key, "key-123")
	}
	if cfg.SDK.Timeout != 3*time.Second {
		t.Errorf("SDK.Timeout = %v, want 3s", cfg.SDK.Timeout)
	}
	if cfg.SDK.Environment != "development" {
		t.Errorf("SDK.Environment = %q, want development", cfg.SDK.Environment)
	}
	if cfg.SplashDelay != 2*time.Second {
		t.Errorf("SplashDelay = %v, want 2s", cfg.SplashDelay)
	}
	if cfg.RedisURL != "redis://localhost:6379" {
		t.Errorf("RedisURL = %q, want redis://localhost:6379", cfg.RedisURL)
	}
}

func TestLoad_MissingKey(t *testing.T) {
	t.Setenv("SDK_KEY", "")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error when SDK_KEY is missing")
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("SDK_KEY", "key")
	t.Setenv("SDK_ENVIRONMENT", "staging")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown environment")
	}
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
port: "7000"
redis_url: redis://localhost:6379/1
sdk:
  key: file-key
  environment: production
  base_url: https://sdk.example.com
  timeout: 5s
breaker:
  failure_threshold: 3
  cooldown: 10s
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("SDK_KEY", "")
	t.Setenv("PORT", "7100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "7100" {
		t.Errorf("Port = %q, env should override file", cfg.Port)
	}
	if cfg.SDK.Key != "file-key" {
		t.Errorf("SDK.Key = %q, want file-key", cfg.SDK.Key)
	}
	if cfg.SDK.Environment != "production" {
		t.Errorf("SDK.Environment = %q, want production", cfg.SDK.Environment)
	}
	if cfg.Breaker.FailureThreshold != 3 {
		t.Errorf("Breaker.FailureThreshold = %d, want 3", cfg.Breaker.FailureThreshold)
	}
	if cfg.Breaker.Cooldown != 10*time.Second {
		t.Errorf("Breaker.Cooldown = %v, want 10s", cfg.Breaker.Cooldown)
	}
	if cfg.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRead_SkipsValidation(t *testing.T) {
	t.Setenv("SDK_KEY", "")
	t.Setenv("MOCK_PORT", "9191")
	t.Setenv("MOCK_DEFERRED_DEEPLINK", "myapp://cake/1/2")

	cfg, err := Read("")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if cfg.MockPort != "9191" {
		t.Errorf("MockPort = %q", cfg.MockPort)
	}
	if cfg.MockDeferredDeepLink != "myapp://cake/1/2" {
		t.Errorf("MockDeferredDeepLink = %q", cfg.MockDeferredDeepLink)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject a missing key")
	}
}
