package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pageza/thali/backend/internal/types"
)

const (
	msgNoContent   = "AI did not return any content."
	msgInvalidMeal = "Failed to parse AI response or AI response was not valid meal data."
)

// MealService turns meal requests into suggestions via the inference engine
type MealService struct {
	inference InferenceClient
	logger    logrus.FieldLogger
}

// NewMealService creates a new MealService instance
func NewMealService(inference InferenceClient, logger logrus.FieldLogger) *MealService {
	return &MealService{
		inference: inference,
		logger:    logger,
	}
}

// Suggest builds the prompt, queries the model and extracts the meal cards.
// Extraction failures are returned as KindParseFailure errors.
func (s *MealService) Suggest(ctx context.Context, req types.MealRequest) ([]types.Meal, error) {
	prompt, err := BuildMealPrompt(req.Query, req.Filters)
	if err != nil {
		return nil, err
	}
	s.logger.Debugf("Applied filter instructions: %q", BuildFilterInstructions(req.Filters))

	content, err := s.inference.Complete(ctx, MealSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	if content == "" {
		s.logger.Warn("Inference response content is empty")
		return nil, types.NewError(types.KindParseFailure, msgNoContent, nil)
	}

	meals := ExtractMeals(content)
	switch {
	case IsParsePlaceholder(meals):
		s.logger.Warnf("Could not parse extracted JSON from model reply:\n%s", content)
		return nil, types.NewError(types.KindParseFailure, meals[0].Text("tip"), nil)
	case len(meals) == 0:
		s.logger.Warnf("Model reply held no usable meal data:\n%s", content)
		return nil, types.NewError(types.KindParseFailure, msgInvalidMeal, nil)
	}

	s.logger.WithField("count", len(meals)).Info("Meal suggestions extracted")
	return meals, nil
}
