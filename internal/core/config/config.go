// Package config provides configuration management for RouteGate tooling.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds settings for the engine's remote-facing pieces: the
// authoritative validation endpoint, request pacing, and preview logging.
type Config struct {
	RemoteBaseURL  string        `mapstructure:"remote_base_url" validate:"required,url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"required"`
	DebounceWindow time.Duration `mapstructure:"debounce_window" validate:"required"`
	MaxRetries     int           `mapstructure:"max_retries" validate:"min=0,max=10"`
	LogLevel       string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat      string        `mapstructure:"log_format" validate:"oneof=json text"`
}

// Default returns configuration with default values.
func Default() *Config {
	return &Config{
		RemoteBaseURL:  "http://127.0.0.1:8085",
		RequestTimeout: 10 * time.Second,
		DebounceWindow: 400 * time.Millisecond,
		MaxRetries:     2,
		LogLevel:       "info",
		LogFormat:      "json",
	}
}

// SigningSecret extracts the remote request-signing secret from the
// RG_SIGNING_SECRET environment variable.
// Format: <key_id>:<base64_secret>. Key IDs are UUIDv7 (32 hex chars without
// hyphens). Secrets are environment-only per 12-factor principles; viper.go
// rejects them in config files.
func SigningSecret() (keyID string, secret []byte, err error) {
	val := os.Getenv("RG_SIGNING_SECRET")
	if val == "" {
		return "", nil, nil
	}
	return ParseSigningSecret(val)
}

// ParseSigningSecret parses key_id:base64_secret format.
// Key ID must be 32 hex chars (UUIDv7 without hyphens); secret must decode to
// at least 32 bytes.
func ParseSigningSecret(envValue string) (keyID string, secret []byte, err error) {
	parts := strings.SplitN(strings.TrimSpace(envValue), ":", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("format must be <key_id>:<base64_secret>")
	}

	keyID = parts[0]
	if len(keyID) != 32 {
		return "", nil, fmt.Errorf("key_id must be 32 hex chars (UUIDv7 without hyphens)")
	}
	for _, c := range keyID {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return "", nil, fmt.Errorf("key_id must be hex chars only")
		}
	}

	secret, err = base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 encoding: %w", err)
	}
	if len(secret) < 32 {
		return "", nil, fmt.Errorf("secret must be at least 32 bytes, got %d", len(secret))
	}

	return keyID, secret, nil
}
