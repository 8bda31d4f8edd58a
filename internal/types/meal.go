package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Meal types the model is asked to produce
const (
	MealTypeLunch  = "Lunch"
	MealTypeDinner = "Dinner"
	// MealTypeError marks the parse-failure placeholder
	MealTypeError = "Error"
)

// Budget tiers accepted in MealFilters.Budget
const (
	BudgetUnder50  = "under50"
	Budget50To100  = "50-100"
	Budget100To200 = "100-200"
	BudgetOver200  = "over200"
)

// MealFilters holds the optional dietary filters of a meal request
type MealFilters struct {
	PCOSMode   bool     `json:"pcosMode"`
	Vegetarian bool     `json:"vegetarian"`
	Keto       bool     `json:"keto"`
	Jain       bool     `json:"jain"`
	Budget     string   `json:"budget"`
	Allergies  []string `json:"allergies"`
}

// MealRequest represents the request body for meal suggestions
type MealRequest struct {
	Query   string      `json:"query"`
	Filters MealFilters `json:"filters"`
}

// Meal is one meal object exactly as the model returned it, plus an "id"
// when the model left it out
type Meal map[string]json.RawMessage

// Text returns the scalar value stored under key as text, or "" when the
// key is absent, null or holds an object or array
func (m Meal) Text(key string) string {
	raw, ok := m[key]
	if !ok {
		return ""
	}
	var s FlexString
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return string(s)
}

// ID returns the meal identifier
func (m Meal) ID() string {
	return m.Text("id")
}

// Name returns the meal name
func (m Meal) Name() string {
	return m.Text("name")
}

// SetText stores s under key as a JSON string
func (m Meal) SetText(key, s string) {
	raw, _ := json.Marshal(s)
	m[key] = raw
}

// MealSuggestion is the full meal card schema the model is asked to produce
type MealSuggestion struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	PrepTime string   `json:"prepTime"`
	Calories string   `json:"calories"`
	Cost     string   `json:"cost"`
	Recipe   []string `json:"recipe"`
	Tip      string   `json:"tip"`
}

// Meal converts the card into its object form
func (s MealSuggestion) Meal() Meal {
	meal := Meal{}
	data, err := json.Marshal(s)
	if err != nil {
		return meal
	}
	_ = json.Unmarshal(data, &meal)
	return meal
}

// MealsResponse is the success (and extraction failure) body of the meal endpoint
type MealsResponse struct {
	Suggestions []Meal `json:"suggestions"`
	Error       string `json:"error,omitempty"`
}

// FlexString can handle both string and number values coming from the model
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = FlexString(num.String())
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = FlexString(strconv.FormatBool(b))
		return nil
	}

	return fmt.Errorf("invalid text value: %s", string(data))
}
