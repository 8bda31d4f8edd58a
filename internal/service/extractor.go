package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pageza/thali/backend/internal/types"
)

// ParseErrorID is the reserved identifier of the parse-failure placeholder
const ParseErrorID = "error_parse"

// ParseErrorPlaceholder returns the single meal-like value signalling that the
// extracted array could not be parsed
func ParseErrorPlaceholder() types.Meal {
	return types.MealSuggestion{
		ID:       ParseErrorID,
		Name:     "Error Parsing AI Response",
		Type:     types.MealTypeError,
		PrepTime: "N/A",
		Calories: "N/A",
		Cost:     "N/A",
		Recipe:   []string{"Could not understand the AI's meal plan."},
		Tip:      "AI response was not valid JSON after extraction.",
	}.Meal()
}

// IsParsePlaceholder reports whether meals is the parse-failure placeholder
func IsParsePlaceholder(meals []types.Meal) bool {
	return len(meals) == 1 && meals[0].ID() == ParseErrorID
}

// FindJSONArray returns the substring from the first '[' to the bracket that
// balances it. Every '[' and ']' after the first one is counted, including
// brackets inside JSON strings.
func FindJSONArray(content string) (string, bool) {
	start := strings.IndexByte(content, '[')
	if start == -1 {
		return "", false
	}

	depth := 0
	for i := start; i < len(content); i++ {
		switch content[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return content[start : i+1], true
			}
		}
	}
	return "", false
}

// ExtractMeals recovers meal objects from a raw model reply. Objects are
// returned as the model wrote them; only a missing id is filled in.
//
// An empty result means no usable content. A bracket-balanced payload that is
// not valid JSON yields ParseErrorPlaceholder instead, so callers can surface
// its tip. A valid array whose items are not objects with a name is an empty
// result, not a placeholder.
func ExtractMeals(content string) []types.Meal {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	raw, ok := FindJSONArray(content)
	if !ok {
		return nil
	}

	// raw is bracket-delimited, so any valid JSON here is an array
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []types.Meal{ParseErrorPlaceholder()}
	}

	meals := make([]types.Meal, 0, len(items))
	for _, item := range items {
		meal, err := decodeMeal(item)
		if err != nil {
			return nil
		}
		meals = append(meals, meal)
	}

	assignIDs(meals)
	return meals
}

// decodeMeal accepts only JSON objects that carry a "name" key
func decodeMeal(item json.RawMessage) (types.Meal, error) {
	trimmed := bytes.TrimSpace(item)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("meal is not an object")
	}

	var meal types.Meal
	if err := json.Unmarshal(trimmed, &meal); err != nil {
		return nil, fmt.Errorf("failed to decode meal: %w", err)
	}
	if _, ok := meal["name"]; !ok {
		return nil, fmt.Errorf("meal has no name")
	}
	return meal, nil
}

// assignIDs gives every meal without a usable id a positional one. Generated
// ids never repeat an id already present in the batch.
func assignIDs(meals []types.Meal) {
	taken := make(map[string]bool, len(meals))
	for _, meal := range meals {
		if id := meal.ID(); id != "" {
			taken[id] = true
		}
	}

	for i, meal := range meals {
		if meal.ID() != "" {
			continue
		}
		id := mealID(i+1, meal.Name())
		for n := 2; taken[id]; n++ {
			id = fmt.Sprintf("%s_%d", mealID(i+1, meal.Name()), n)
		}
		taken[id] = true
		meal.SetText("id", id)
	}
}

func mealID(position int, name string) string {
	if name == "" {
		name = "unknown"
	}
	return fmt.Sprintf("meal_%d_%s", position, strings.ToLower(strings.ReplaceAll(name, " ", "_")))
}
