package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/thali/backend/internal/types"
)

// MockInferenceClient is a mock implementation of service.InferenceClient
type MockInferenceClient struct {
	mock.Mock
}

// Complete mocks the Complete method
func (m *MockInferenceClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

// MockPlacesClient is a mock implementation of service.PlacesClient
type MockPlacesClient struct {
	mock.Mock
}

// TextSearch mocks the TextSearch method
func (m *MockPlacesClient) TextSearch(ctx context.Context, query string) ([]types.PlaceResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.PlaceResult), args.Error(1)
}

// MockMealService is a mock implementation of service.IMealService
type MockMealService struct {
	mock.Mock
}

// Suggest mocks the Suggest method
func (m *MockMealService) Suggest(ctx context.Context, req types.MealRequest) ([]types.Meal, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Meal), args.Error(1)
}

// MockRestaurantService is a mock implementation of service.IRestaurantService
type MockRestaurantService struct {
	mock.Mock
}

// Find mocks the Find method
func (m *MockRestaurantService) Find(ctx context.Context, mealName string) ([]types.RestaurantResult, error) {
	args := m.Called(ctx, mealName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RestaurantResult), args.Error(1)
}
