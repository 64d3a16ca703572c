package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the production Codeplane API host.
const DefaultBaseURL = "https://api.codeplane.dev"

// KeyPrefix is the documented prefix of Codeplane API keys. Keys without it
// are still sent; the remote service is the authority on validity.
const KeyPrefix = "cp_"

// Config holds the process-wide configuration. It is read once at startup
// and never mutated afterward, so concurrent reads need no locking.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIBaseURL            string        `mapstructure:"codeplane_api_url"`
	APIKey                string        `mapstructure:"codeplane_api_key"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and an optional .env
// file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("app_name", "codeplane-mcp")
	v.SetDefault("app_env", "production")
	v.SetDefault("log_level", "info")
	v.SetDefault("codeplane_api_url", DefaultBaseURL)
	v.SetDefault("codeplane_api_key", "")
	v.SetDefault("request_timeout_seconds", 600)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("codeplane_api_url must not be empty")
	}
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid codeplane_api_url %q", cfg.APIBaseURL)
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	// The key is passed through exactly as configured, whitespace included;
	// the remote service rejects malformed keys itself.
	return &cfg, nil
}

// HasAPIKey reports whether any key is configured.
func (c *Config) HasAPIKey() bool { return c.APIKey != "" }
