// Package config loads the service configuration from the environment.
// A .env file in the working directory is read first, when present.
package config

import (
	"errors"
	"fmt"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"

	"flixauth/internal/models"
)

const (
	DefaultPort        = 5000
	DefaultMetricsPort = 9090
	DefaultEmail       = "user@example.com"
	DefaultPassword    = "password123"
)

// Config holds all configuration for the service.
type Config struct {
	Port           int    `mapstructure:"PORT"`
	MetricsPort    int    `mapstructure:"METRICS_PORT"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	LoginEmail     string `mapstructure:"LOGIN_EMAIL"`
	LoginPassword  string `mapstructure:"LOGIN_PASSWORD"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	LogFormat      string `mapstructure:"LOG_FORMAT"`
}

// Load reads configuration from environment variables, applies defaults
// and validates the result.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("METRICS_PORT", DefaultMetricsPort)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("LOGIN_EMAIL", DefaultEmail)
	v.SetDefault("LOGIN_PASSWORD", DefaultPassword)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return fmt.Errorf("METRICS_PORT must be between 0 and 65535, got %d", c.MetricsPort)
	}
	if c.MetricsPort != 0 && c.MetricsPort == c.Port {
		return errors.New("METRICS_PORT must differ from PORT")
	}
	if c.LoginEmail == "" || c.LoginPassword == "" {
		return errors.New("LOGIN_EMAIL and LOGIN_PASSWORD must not be empty")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// Credential returns the credential record the verifier matches against.
func (c *Config) Credential() models.Credential {
	return models.Credential{Email: c.LoginEmail, Password: c.LoginPassword}
}

// Origins splits ALLOWED_ORIGINS into trimmed, non-empty entries. An empty
// setting means any origin.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// MetricsEnabled reports whether the admin listener should be started.
func (c *Config) MetricsEnabled() bool {
	return c.MetricsPort != 0
}
