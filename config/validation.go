package config

import (
	"fmt"
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

// ValidateConfig checks that every setting is usable. A missing Places API key
// is not an error here; lookups report it per request.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errors = append(errors, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)}.Error())
	}

	urls := []struct {
		field string
		raw   string
	}{
		{"ALLOWED_ORIGIN", cfg.AllowedOrigin},
		{"INFERENCE_URL", cfg.InferenceURL},
		{"PLACES_API_URL", cfg.PlacesURL},
	}
	for _, u := range urls {
		if !isHTTPURL(u.raw) {
			errors = append(errors, ValidationError{Field: u.field, Message: fmt.Sprintf("invalid URL %q", u.raw)}.Error())
		}
	}

	if cfg.InferenceTimeout <= 0 {
		errors = append(errors, ValidationError{Field: "INFERENCE_TIMEOUT", Message: "must be positive"}.Error())
	}
	if cfg.PlacesTimeout <= 0 {
		errors = append(errors, ValidationError{Field: "PLACES_TIMEOUT", Message: "must be positive"}.Error())
	}

	if cfg.RedisURL != "" {
		if cfg.RateLimit <= 0 {
			errors = append(errors, ValidationError{Field: "RATE_LIMIT", Message: "must be positive"}.Error())
		}
		if cfg.RateLimitWindow <= 0 {
			errors = append(errors, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be positive"}.Error())
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
