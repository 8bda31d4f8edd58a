package service

import (
	"fmt"
	"strings"

	"github.com/pageza/thali/backend/internal/types"
)

// MealSystemPrompt is sent as the system message of every meal completion
const MealSystemPrompt = "Follow user instructions for output format and ALL dietary constraints."

const constraintHeader = "\nIMPORTANT DIETARY PREFERENCES & CONSTRAINTS (Adhere strictly):\n- "

const (
	clausePCOS       = "PCOS-safe (no dairy, low-GI, avoid processed sugars/refined carbs, focus on whole grains, lean protein)."
	clauseVegetarian = "Vegetarian (no meat, poultry, fish). If suggesting eggs, mark as optional."
	clauseKeto       = "Keto-friendly (very low carb, high fat, moderate protein)."
	clauseJain       = "Jain (strictly vegetarian, no root vegetables like onion, garlic, potatoes, carrots, etc.)."
)

var budgetClauses = map[string]string{
	types.BudgetUnder50:  "under ₹50.",
	types.Budget50To100:  "between ₹50–₹100.",
	types.Budget100To200: "between ₹100–₹200.",
	types.BudgetOver200:  "over ₹200 (aim for value).",
}

const mealPromptTemplate = `You are a friendly Indian nutritionist and home chef. A user has shared how they feel, what food they have, and potentially some dietary preferences. Based on ALL this information, suggest two desi-style meals: one for lunch, one for dinner.

User input: "%s"
%s

Make sure the meals are desi and emotionally comforting.
STRICTLY Provide the output ONLY as a JSON array of two meal objects. Each object should have keys: "name", "type", "prepTime", "calories", "cost", "recipe" (as an array of strings), and "tip".
The "recipe" array should contain exactly 3 simple steps.
The "type" should be either "Lunch" or "Dinner".
The "cost" should be a string like "₹80" or "₹50-₹100".

Example of desired JSON output format:
[
  {
    "name": "Meal 1 Name",
    "type": "Lunch",
    "prepTime": "X mins",
    "calories": "Y kcal",
    "cost": "₹Z",
    "recipe": ["Step 1 description...", "Step 2 description...", "Step 3 description..."],
    "tip": "Some relevant tip..."
  },
  {
    "name": "Meal 2 Name",
    "type": "Dinner",
    "prepTime": "A mins",
    "calories": "B kcal",
    "cost": "₹C",
    "recipe": ["Step 1 description...", "Step 2 description...", "Step 3 description..."],
    "tip": "Another relevant tip..."
  }
]
`

// FilterClauses returns the natural-language clause of every active filter, in a fixed order
func FilterClauses(filters types.MealFilters) []string {
	var clauses []string
	if filters.PCOSMode {
		clauses = append(clauses, clausePCOS)
	}
	if filters.Vegetarian {
		clauses = append(clauses, clauseVegetarian)
	}
	if filters.Keto {
		clauses = append(clauses, clauseKeto)
	}
	if filters.Jain {
		clauses = append(clauses, clauseJain)
	}

	// Unknown tiers are ignored
	if budget, ok := budgetClauses[filters.Budget]; ok {
		clauses = append(clauses, "Meal cost ideally "+budget)
	}

	allergens := make([]string, 0, len(filters.Allergies))
	for _, a := range filters.Allergies {
		if a = strings.TrimSpace(a); a != "" {
			allergens = append(allergens, a)
		}
	}
	if len(allergens) > 0 {
		clauses = append(clauses, fmt.Sprintf("MUST AVOID allergens: %s.", strings.Join(allergens, ", ")))
	}

	return clauses
}

// BuildFilterInstructions renders the constraint block, or "" when no filter is active
func BuildFilterInstructions(filters types.MealFilters) string {
	clauses := FilterClauses(filters)
	if len(clauses) == 0 {
		return ""
	}
	return constraintHeader + strings.Join(clauses, "\n- ")
}

// BuildMealPrompt renders the full user prompt for a meal request
func BuildMealPrompt(query string, filters types.MealFilters) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", types.NewError(types.KindInvalidInput, "No query provided.", nil)
	}
	return fmt.Sprintf(mealPromptTemplate, query, BuildFilterInstructions(filters)), nil
}
