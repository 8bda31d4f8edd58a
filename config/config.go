package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pageza/thali/backend/internal/service"
)

// Defaults used when the environment leaves a setting unset
const (
	DefaultServerHost       = "0.0.0.0"
	DefaultServerPort       = "5001"
	DefaultAllowedOrigin    = "http://localhost:5173"
	DefaultInferenceURL     = service.DefaultInferenceURL
	DefaultInferenceModel   = service.DefaultInferenceModel
	DefaultInferenceTimeout = service.DefaultInferenceTimeout
	DefaultPlacesURL        = service.DefaultPlacesURL
	DefaultPlacesTimeout    = service.DefaultPlacesTimeout
	DefaultSearchLocation   = service.DefaultSearchLocation
	DefaultRateLimit        = 30
	DefaultRateLimitWindow  = time.Minute
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
)

// Config holds all configuration for the application.
// It is built once at startup and never mutated afterwards.
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost    string
	ServerPort    string
	AllowedOrigin string

	// Inference engine
	InferenceURL     string
	InferenceModel   string
	InferenceTimeout time.Duration

	// Places search
	PlacesAPIKey   string
	PlacesURL      string
	PlacesTimeout  time.Duration
	SearchLocation string

	// Rate limiting, disabled when RedisURL is empty
	RedisURL        string
	RateLimit       int
	RateLimitWindow time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env.UsesDotEnv() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{Environment: env}
	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	if env.UsesSecrets() {
		if key := readSecret("google_maps_api_key"); key != "" {
			cfg.PlacesAPIKey = key
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadFromEnv(cfg *Config) error {
	var err error

	cfg.ServerHost = getEnv("SERVER_HOST", DefaultServerHost)
	cfg.ServerPort = getEnv("SERVER_PORT", getEnv("PORT", DefaultServerPort))
	cfg.AllowedOrigin = getEnv("ALLOWED_ORIGIN", DefaultAllowedOrigin)

	cfg.InferenceURL = getEnv("INFERENCE_URL", getEnv("LM_STUDIO_URL", DefaultInferenceURL))
	cfg.InferenceModel = getEnv("INFERENCE_MODEL", DefaultInferenceModel)
	if cfg.InferenceTimeout, err = getDuration("INFERENCE_TIMEOUT", DefaultInferenceTimeout); err != nil {
		return err
	}

	cfg.PlacesAPIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.PlacesURL = getEnv("PLACES_API_URL", DefaultPlacesURL)
	if cfg.PlacesTimeout, err = getDuration("PLACES_TIMEOUT", DefaultPlacesTimeout); err != nil {
		return err
	}
	cfg.SearchLocation = getEnv("SEARCH_LOCATION", DefaultSearchLocation)

	cfg.RedisURL = os.Getenv("REDIS_URL")
	if cfg.RateLimit, err = getInt("RATE_LIMIT", DefaultRateLimit); err != nil {
		return err
	}
	if cfg.RateLimitWindow, err = getDuration("RATE_LIMIT_WINDOW", DefaultRateLimitWindow); err != nil {
		return err
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", DefaultLogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", DefaultLogFormat)

	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: fmt.Sprintf("invalid duration %q", v)}
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: fmt.Sprintf("invalid integer %q", v)}
	}
	return n, nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
