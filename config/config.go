package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string `env:"SERVER_HOST"`
	ServerPort string `env:"SERVER_PORT" env-default:"5001"`
	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is honored
	TrustedProxies []string `env:"TRUSTED_PROXIES" env-separator:","`

	// OpenAI configuration
	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIAPIKeyFile string        `env:"OPENAI_API_KEY_FILE"`
	OpenAIAPIURL     string        `env:"OPENAI_API_URL" env-default:"https://api.openai.com/v1"`
	ChatModel        string        `env:"OPENAI_CHAT_MODEL" env-default:"gpt-4o-mini"`
	ImageModel       string        `env:"OPENAI_IMAGE_MODEL" env-default:"dall-e-3"`
	OpenAITimeout    time.Duration `env:"OPENAI_TIMEOUT" env-default:"10m"`

	// Redis backs the optional rate limiter
	RedisURL         string `env:"REDIS_URL"`
	RateLimitPerHour int    `env:"RATE_LIMIT_PER_HOUR" env-default:"0"`

	// S3 image mirroring, disabled when no bucket is set
	S3BucketName string `env:"S3_BUCKET_NAME"`
	AWSRegion    string `env:"AWS_REGION"`

	MetricsEnabled bool `env:"METRICS_ENABLED" env-default:"true"`
}

// LoadConfig reads an optional .env file, then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.Environment = GetEnvironment()

	if cfg.OpenAIAPIKey == "" && cfg.OpenAIAPIKeyFile != "" {
		key, err := readKeyFile(cfg.OpenAIAPIKeyFile)
		if err != nil {
			return nil, err
		}
		cfg.OpenAIAPIKey = key
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RateLimitEnabled reports whether requests should be throttled
func (c *Config) RateLimitEnabled() bool {
	return c.RateLimitPerHour > 0
}

// ImageMirroringEnabled reports whether generated images are copied to S3
func (c *Config) ImageMirroringEnabled() bool {
	return c.S3BucketName != ""
}

// readKeyFile reads an API key from a Docker secret style file
func readKeyFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read API key file: %w", err)
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("API key file is empty")
	}
	return key, nil
}
