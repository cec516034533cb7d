package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Port        string `yaml:"port"`
	RedisURL    string `yaml:"redis_url"`
	DatabaseURL string `yaml:"database_url"`
	MockPort    string `yaml:"mock_port"`

	// MockDeferredDeepLink is handed out by the mock backend on first init.
	MockDeferredDeepLink string `yaml:"mock_deferred_deeplink"`

	SDK     SDKConfig     `yaml:"sdk"`
	Breaker BreakerConfig `yaml:"breaker"`

	SplashDelay time.Duration `yaml:"splash_delay"`
}

// SDKConfig describes how the attribution SDK is initialized.
type SDKConfig struct {
	Key         string        `yaml:"key"`
	Secret      string        `yaml:"secret"`
	Environment string        `yaml:"environment"` // development, production, testing
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	RateLimit   int           `yaml:"rate_limit"` // calls per second, 0 = unlimited
}

// BreakerConfig tunes the circuit breaker guarding SDK calls.
type BreakerConfig struct {
	FailureThreshold int           `yaml:"failure_threshold"`
	Cooldown         time.Duration `yaml:"cooldown"`
}

// Load reads the configuration with Read and validates it.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read reads configuration from environment variables without validating
// it. When path is not empty the YAML file is read first and environment
// variables override it.
func Read(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.MockPort = getEnv("MOCK_PORT", cfg.MockPort)
	cfg.SDK.Key = getEnv("SDK_KEY", cfg.SDK.Key)
	cfg.SDK.Secret = getEnv("SDK_SECRET", cfg.SDK.Secret)
	cfg.SDK.Environment = getEnv("SDK_ENVIRONMENT", cfg.SDK.Environment)
	cfg.SDK.BaseURL = getEnv("SDK_BASE_URL", cfg.SDK.BaseURL)
	cfg.SDK.Timeout = getEnvDuration("SDK_TIMEOUT", cfg.SDK.Timeout)
	cfg.SDK.RateLimit = getEnvInt("SDK_RATE_LIMIT", cfg.SDK.RateLimit)
	cfg.Breaker.FailureThreshold = getEnvInt("BREAKER_FAILURE_THRESHOLD", cfg.Breaker.FailureThreshold)
	cfg.Breaker.Cooldown = getEnvDuration("BREAKER_COOLDOWN", cfg.Breaker.Cooldown)
	cfg.SplashDelay = getEnvDuration("SPLASH_DELAY", cfg.SplashDelay)
	cfg.MockDeferredDeepLink = getEnv("MOCK_DEFERRED_DEEPLINK", cfg.MockDeferredDeepLink)

	return cfg, nil
}

// Validate checks the settings every binary needs.
func (c *Config) Validate() error {
	if c.SDK.Key == "" {
		return fmt.Errorf("SDK_KEY is required")
	}
	if c.SDK.BaseURL == "" {
		return fmt.Errorf("SDK_BASE_URL is required")
	}
	switch c.SDK.Environment {
	case "development", "production", "testing":
	default:
		return fmt.Errorf("SDK_ENVIRONMENT must be development, production or testing, got %q", c.SDK.Environment)
	}
	if c.SDK.RateLimit < 0 {
		return fmt.Errorf("SDK_RATE_LIMIT must not be negative")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Port:     "8080",
		MockPort: "9090",
		RedisURL: "redis://localhost:6379",
		SDK: SDKConfig{
			Environment: "development",
			BaseURL:     "http://localhost:9090",
			Timeout:     10 * time.Second,
		},
		Breaker: BreakerConfig{
			FailureThreshold: 5,
			Cooldown:         30 * time.Second,
		},
		SplashDelay: 2 * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil {
			return d
		}
	}
	return fallback
}
