package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pageza/thali/backend/internal/types"
)

const (
	DefaultPlacesURL     = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	DefaultPlacesTimeout = 10 * time.Second

	placesFields = "name,formatted_address,rating,user_ratings_total,opening_hours,photos,place_id"
)

// GooglePlacesClient calls the Places text-search endpoint
type GooglePlacesClient struct {
	apiKey  string
	apiURL  string
	timeout time.Duration
	client  *http.Client
	logger  logrus.FieldLogger
}

// NewGooglePlacesClient creates a Places client. An empty apiKey is allowed;
// searches then fail with KindConfigurationMissing.
func NewGooglePlacesClient(apiKey, apiURL string, timeout time.Duration, logger logrus.FieldLogger) *GooglePlacesClient {
	if apiURL == "" {
		apiURL = DefaultPlacesURL
	}
	if timeout <= 0 {
		timeout = DefaultPlacesTimeout
	}
	return &GooglePlacesClient{
		apiKey:  apiKey,
		apiURL:  apiURL,
		timeout: timeout,
		client:  &http.Client{},
		logger:  logger,
	}
}

// TextSearch runs a text search and returns the upstream results in order
func (c *GooglePlacesClient) TextSearch(ctx context.Context, query string) ([]types.PlaceResult, error) {
	if c.apiKey == "" {
		c.logger.Error("GOOGLE_MAPS_API_KEY is not set")
		return nil, types.NewError(types.KindConfigurationMissing, "Server configuration error: Maps API key is missing.", nil)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	endpoint, err := url.Parse(c.apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid places URL: %w", err)
	}
	params := endpoint.Query()
	params.Set("query", query)
	params.Set("key", c.apiKey)
	params.Set("fields", placesFields)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.WithField("query", query).Info("Searching places")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyPlacesError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyPlacesError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithField("status", resp.StatusCode).Errorf("Places request failed: %s", string(body))
		return nil, types.NewError(types.KindUpstreamBadResponse,
			fmt.Sprintf("Error searching for restaurants: status %d", resp.StatusCode), nil)
	}

	var result types.PlacesSearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, types.NewError(types.KindUpstreamBadResponse, "Error searching for restaurants: unreadable response", err)
	}

	if result.Status != "" && result.Status != "OK" && result.Status != "ZERO_RESULTS" {
		c.logger.WithFields(logrus.Fields{
			"status": result.Status,
			"detail": result.ErrorMessage,
		}).Warn("Places search returned a non-OK status")
	}

	return result.Results, nil
}

func classifyPlacesError(err error) error {
	if transportErrorKind(err) == types.KindUpstreamTimeout {
		return types.NewError(types.KindUpstreamTimeout, "Could not reach restaurant search service (timeout).", err)
	}
	return types.NewError(types.KindUpstreamUnreachable, fmt.Sprintf("Error searching for restaurants: %v", err), err)
}
