package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/thali/backend/internal/logger"
	"github.com/pageza/thali/backend/internal/mocks"
	"github.com/pageza/thali/backend/internal/types"
)

func ptr[T any](v T) *T { return &v }

func TestProjectRestaurants_CapsAtThree(t *testing.T) {
	places := make([]types.PlaceResult, 0, 5)
	for i := 1; i <= 5; i++ {
		places = append(places, types.PlaceResult{Name: fmt.Sprintf("R%d", i), PlaceID: fmt.Sprintf("p%d", i)})
	}

	restaurants := ProjectRestaurants(places)

	require.Len(t, restaurants, MaxRestaurants)
	assert.Equal(t, "R1", restaurants[0].Name)
	assert.Equal(t, "R3", restaurants[2].Name)
}

func TestProjectRestaurants_NeverPads(t *testing.T) {
	assert.Empty(t, ProjectRestaurants(nil))
	assert.Len(t, ProjectRestaurants([]types.PlaceResult{{Name: "Only"}}), 1)
}

func TestProjectRestaurants_Defaults(t *testing.T) {
	restaurants := ProjectRestaurants([]types.PlaceResult{
		{Name: "Rated", FormattedAddress: "A", Rating: ptr(4.5), UserRatingsTotal: ptr(87), PlaceID: "p1"},
		{Name: "Unrated", FormattedAddress: "B", PlaceID: "p2"},
	})

	require.Len(t, restaurants, 2)
	assert.Equal(t, types.Rating{Value: 4.5, Known: true}, restaurants[0].Rating)
	assert.Equal(t, 87, restaurants[0].UserRatingsTotal)
	assert.False(t, restaurants[1].Rating.Known)
	assert.Equal(t, 0, restaurants[1].UserRatingsTotal)

	data, err := json.Marshal(restaurants)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"name":"Rated","address":"A","rating":4.5,"user_ratings_total":87,"place_id":"p1"},
		{"name":"Unrated","address":"B","rating":"N/A","user_ratings_total":0,"place_id":"p2"}
	]`, string(data))
}

func TestRestaurantService_Find(t *testing.T) {
	places := new(mocks.MockPlacesClient)
	places.On("TextSearch", mock.Anything, "Litti Chokha restaurants in Gaya, Bihar").
		Return([]types.PlaceResult{{Name: "Litti Point", PlaceID: "p1"}}, nil)

	svc := NewRestaurantService(places, "Gaya, Bihar", logger.Discard())
	restaurants, err := svc.Find(context.Background(), "Litti Chokha")

	require.NoError(t, err)
	require.Len(t, restaurants, 1)
	assert.Equal(t, "Litti Point", restaurants[0].Name)
	places.AssertExpectations(t)
}

func TestRestaurantService_FindRequiresMealName(t *testing.T) {
	places := new(mocks.MockPlacesClient)
	svc := NewRestaurantService(places, "", logger.Discard())

	_, err := svc.Find(context.Background(), "")

	assert.Equal(t, types.KindInvalidInput, types.KindOf(err))
	places.AssertNotCalled(t, "TextSearch", mock.Anything, mock.Anything)
}

func TestRestaurantService_FindPropagatesErrors(t *testing.T) {
	places := new(mocks.MockPlacesClient)
	places.On("TextSearch", mock.Anything, mock.Anything).
		Return(nil, types.NewError(types.KindUpstreamTimeout, "Could not reach restaurant search service (timeout).", nil))

	_, err := NewRestaurantService(places, "", logger.Discard()).Find(context.Background(), "Khichdi")

	assert.Equal(t, types.KindUpstreamTimeout, types.KindOf(err))
}
