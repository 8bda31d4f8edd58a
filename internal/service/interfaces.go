package service

import (
	"context"

	"github.com/pageza/thali/backend/internal/types"
)

// InferenceClient sends a prompt to the inference engine and returns the reply text
type InferenceClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// PlacesClient resolves a free-text query to ranked place results
type PlacesClient interface {
	TextSearch(ctx context.Context, query string) ([]types.PlaceResult, error)
}

// IMealService defines the interface for meal suggestion operations
type IMealService interface {
	Suggest(ctx context.Context, req types.MealRequest) ([]types.Meal, error)
}

// IRestaurantService defines the interface for restaurant lookup operations
type IRestaurantService interface {
	Find(ctx context.Context, mealName string) ([]types.RestaurantResult, error)
}
