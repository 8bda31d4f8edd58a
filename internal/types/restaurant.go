package types

import "encoding/json"

// RatingUnknown is rendered when the upstream place carries no rating
const RatingUnknown = "N/A"

// RestaurantRequest represents the request body for restaurant lookups
type RestaurantRequest struct {
	MealName string `json:"mealName"`
}

// PlaceResult is a single entry of a Places text-search response.
// Pointer fields distinguish absent values from zero.
type PlaceResult struct {
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
	PlaceID          string   `json:"place_id"`
}

// PlacesSearchResponse is the Places text-search envelope
type PlacesSearchResponse struct {
	Results      []PlaceResult `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// Rating is either a numeric score or unknown
type Rating struct {
	Value float64
	Known bool
}

func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Known {
		return json.Marshal(RatingUnknown)
	}
	return json.Marshal(r.Value)
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*r = Rating{Value: v, Known: true}
		return nil
	}
	*r = Rating{}
	return nil
}

// RestaurantResult is the projected restaurant record returned to callers
type RestaurantResult struct {
	Name             string `json:"name"`
	Address          string `json:"address"`
	Rating           Rating `json:"rating"`
	UserRatingsTotal int    `json:"user_ratings_total"`
	PlaceID          string `json:"place_id"`
}

// RestaurantsResponse is the success body of the restaurant endpoint
type RestaurantsResponse struct {
	Restaurants []RestaurantResult `json:"restaurants"`
}
