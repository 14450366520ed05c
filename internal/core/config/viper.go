package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults come from Default() so the two sets cannot drift
	def := Default()
	v.SetDefault("remote_base_url", def.RemoteBaseURL)
	v.SetDefault("request_timeout", def.RequestTimeout)
	v.SetDefault("debounce_window", def.DebounceWindow)
	v.SetDefault("max_retries", def.MaxRetries)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)

	// Bind environment variables with RG_ prefix
	v.SetEnvPrefix("RG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Security check: reject secrets in config files
	// Secrets must be environment-only per 12-factor principles
	if v.InConfig("signing_secret") {
		return nil, fmt.Errorf("signing secrets not allowed in config files (use RG_SIGNING_SECRET environment variable)")
	}

	cfg := &Config{
		RemoteBaseURL:  v.GetString("remote_base_url"),
		RequestTimeout: v.GetDuration("request_timeout"),
		DebounceWindow: v.GetDuration("debounce_window"),
		MaxRetries:     v.GetInt("max_retries"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks field constraints via struct tags.
func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
