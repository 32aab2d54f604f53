package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flixauth/internal/models"
)

var envKeys = []string{
	"PORT", "METRICS_PORT", "ALLOWED_ORIGINS", "LOGIN_EMAIL",
	"LOGIN_PASSWORD", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv makes each test independent of the caller's environment and of
// any .env file loaded at init.
func clearEnv(t *testing.T) {
	t.Helper()
	defaults := map[string]string{
		"PORT":            "5000",
		"METRICS_PORT":    "9090",
		"ALLOWED_ORIGINS": "*",
		"LOGIN_EMAIL":     DefaultEmail,
		"LOGIN_PASSWORD":  DefaultPassword,
		"LOG_LEVEL":       "info",
		"LOG_FORMAT":      "console",
	}
	for _, k := range envKeys {
		t.Setenv(k, defaults[k])
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, 9090, cfg.MetricsPort)
	assert.True(t, cfg.MetricsEnabled())
	assert.Equal(t, []string{"*"}, cfg.Origins())
	assert.Equal(t, models.Credential{Email: "user@example.com", Password: "password123"}, cfg.Credential())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("METRICS_PORT", "0")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("LOGIN_EMAIL", "ops@flix.test")
	t.Setenv("LOGIN_PASSWORD", "s3cret!")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.False(t, cfg.MetricsEnabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
	assert.Equal(t, models.Credential{Email: "ops@flix.test", Password: "s3cret!"}, cfg.Credential())
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "PORT", "70000"},
		{"port not a number", "PORT", "http"},
		{"negative metrics port", "METRICS_PORT", "-1"},
		{"metrics port equals port", "METRICS_PORT", "5000"},
		{"empty email", "LOGIN_EMAIL", ""},
		{"empty password", "LOGIN_PASSWORD", ""},
		{"unknown log format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestOrigins_EmptyMeansAny(t *testing.T) {
	cfg := &Config{AllowedOrigins: " , "}
	assert.Equal(t, []string{"*"}, cfg.Origins())
}
