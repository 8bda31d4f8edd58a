package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"CI", "ENV", "SECRETS_DIR", "SERVER_HOST", "SERVER_PORT", "PORT", "ALLOWED_ORIGIN",
	"INFERENCE_URL", "LM_STUDIO_URL", "INFERENCE_MODEL", "INFERENCE_TIMEOUT",
	"GOOGLE_MAPS_API_KEY", "PLACES_API_URL", "PLACES_TIMEOUT", "SEARCH_LOCATION",
	"REDIS_URL", "RATE_LIMIT", "RATE_LIMIT_WINDOW", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every config variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfigWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, "0.0.0.0:5001", cfg.Addr())
	assert.Equal(t, "http://localhost:5173", cfg.AllowedOrigin)
	assert.Equal(t, "http://localhost:1234/v1/chat/completions", cfg.InferenceURL)
	assert.Equal(t, "loaded_model", cfg.InferenceModel)
	assert.Equal(t, 120*time.Second, cfg.InferenceTimeout)
	assert.Equal(t, 10*time.Second, cfg.PlacesTimeout)
	assert.Equal(t, "Patna, Bihar", cfg.SearchLocation)
	assert.Empty(t, cfg.PlacesAPIKey)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("ALLOWED_ORIGIN", "https://thali.example.com")
	t.Setenv("LM_STUDIO_URL", "http://inference:1234/v1/chat/completions")
	t.Setenv("INFERENCE_TIMEOUT", "30s")
	t.Setenv("GOOGLE_MAPS_API_KEY", "maps-key")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("RATE_LIMIT", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "https://thali.example.com", cfg.AllowedOrigin)
	assert.Equal(t, "http://inference:1234/v1/chat/completions", cfg.InferenceURL)
	assert.Equal(t, 30*time.Second, cfg.InferenceTimeout)
	assert.Equal(t, "maps-key", cfg.PlacesAPIKey)
	assert.Equal(t, 5, cfg.RateLimit)
}

func TestLoadConfigInferenceURLPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("LM_STUDIO_URL", "http://legacy:1234/v1/chat/completions")
	t.Setenv("INFERENCE_URL", "http://preferred:1234/v1/chat/completions")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://preferred:1234/v1/chat/completions", cfg.InferenceURL)
}

func TestLoadConfigProductionSecret(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "google_maps_api_key"), []byte("secret-key\n"), 0o600))
	t.Setenv("ENV", "production")
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("GOOGLE_MAPS_API_KEY", "env-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, "secret-key", cfg.PlacesAPIKey)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad port", "SERVER_PORT", "http"},
		{"bad duration", "INFERENCE_TIMEOUT", "soon"},
		{"negative timeout", "PLACES_TIMEOUT", "-1s"},
		{"bad url", "INFERENCE_URL", "localhost:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := LoadConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestGetEnvironment(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
	assert.False(t, CI.UsesDotEnv())
	assert.False(t, CI.UsesSecrets())
}

func TestValidateConfigReportsErrorsInOrder(t *testing.T) {
	cfg := &Config{
		ServerPort:       "5001",
		AllowedOrigin:    "localhost:5173",
		InferenceURL:     "ftp://model",
		PlacesURL:        "not a url",
		InferenceTimeout: time.Second,
		PlacesTimeout:    time.Second,
	}

	for i := 0; i < 5; i++ {
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Equal(t, "configuration validation failed:\n"+
			`ALLOWED_ORIGIN: invalid URL "localhost:5173"`+"\n"+
			`INFERENCE_URL: invalid URL "ftp://model"`+"\n"+
			`PLACES_API_URL: invalid URL "not a url"`, err.Error())
	}
}
