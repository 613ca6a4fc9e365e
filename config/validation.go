package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration and reports every problem found
func ValidateConfig(cfg *Config) error {
	var errs []error

	if cfg.OpenAIAPIKey == "" {
		errs = append(errs, ValidationError{Field: "OPENAI_API_KEY", Message: "is required (or set OPENAI_API_KEY_FILE)"})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	if u, err := url.Parse(cfg.OpenAIAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{Field: "OPENAI_API_URL", Message: fmt.Sprintf("invalid URL %q", cfg.OpenAIAPIURL)})
	}

	for _, proxy := range cfg.TrustedProxies {
		if !validProxy(proxy) {
			errs = append(errs, ValidationError{Field: "TRUSTED_PROXIES", Message: fmt.Sprintf("invalid IP or CIDR %q", proxy)})
		}
	}

	if cfg.OpenAITimeout <= 0 {
		errs = append(errs, ValidationError{Field: "OPENAI_TIMEOUT", Message: "must be positive"})
	}

	if cfg.RateLimitPerHour < 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_PER_HOUR", Message: "must not be negative"})
	}
	if cfg.RateLimitPerHour > 0 && cfg.RedisURL == "" {
		errs = append(errs, ValidationError{Field: "REDIS_URL", Message: "is required when rate limiting is enabled"})
	}

	return errors.Join(errs...)
}

func validProxy(proxy string) bool {
	if strings.Contains(proxy, "/") {
		_, _, err := net.ParseCIDR(proxy)
		return err == nil
	}
	return net.ParseIP(proxy) != nil
}
