package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pageza/thali/backend/internal/types"
)

const (
	DefaultSearchLocation = "Patna, Bihar"
	MaxRestaurants        = 3
)

// RestaurantService finds restaurants serving a meal near the configured location
type RestaurantService struct {
	places   PlacesClient
	location string
	logger   logrus.FieldLogger
}

// NewRestaurantService creates a new RestaurantService instance
func NewRestaurantService(places PlacesClient, location string, logger logrus.FieldLogger) *RestaurantService {
	if location == "" {
		location = DefaultSearchLocation
	}
	return &RestaurantService{
		places:   places,
		location: location,
		logger:   logger,
	}
}

// BuildPlacesQuery renders the text-search query for a meal
func BuildPlacesQuery(mealName, location string) string {
	return fmt.Sprintf("%s restaurants in %s", mealName, location)
}

// ProjectRestaurants keeps the first MaxRestaurants results and fills defaults
func ProjectRestaurants(places []types.PlaceResult) []types.RestaurantResult {
	if len(places) > MaxRestaurants {
		places = places[:MaxRestaurants]
	}

	restaurants := make([]types.RestaurantResult, 0, len(places))
	for _, p := range places {
		r := types.RestaurantResult{
			Name:    p.Name,
			Address: p.FormattedAddress,
			PlaceID: p.PlaceID,
		}
		if p.Rating != nil {
			r.Rating = types.Rating{Value: *p.Rating, Known: true}
		}
		if p.UserRatingsTotal != nil {
			r.UserRatingsTotal = *p.UserRatingsTotal
		}
		restaurants = append(restaurants, r)
	}
	return restaurants
}

// Find looks up restaurants for mealName
func (s *RestaurantService) Find(ctx context.Context, mealName string) ([]types.RestaurantResult, error) {
	if strings.TrimSpace(mealName) == "" {
		return nil, types.NewError(types.KindInvalidInput, "No mealName provided.", nil)
	}

	places, err := s.places.TextSearch(ctx, BuildPlacesQuery(mealName, s.location))
	if err != nil {
		return nil, err
	}

	restaurants := ProjectRestaurants(places)
	s.logger.WithFields(logrus.Fields{
		"meal":     mealName,
		"upstream": len(places),
		"returned": len(restaurants),
	}).Info("Restaurant lookup complete")
	return restaurants, nil
}
