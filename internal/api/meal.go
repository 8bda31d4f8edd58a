package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/thali/backend/internal/service"
	"github.com/pageza/thali/backend/internal/types"
)

// MealHandler handles meal suggestion requests
type MealHandler struct {
	mealService service.IMealService
}

// NewMealHandler creates a new MealHandler instance
func NewMealHandler(mealService service.IMealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

// RegisterRoutes registers the meal routes
func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/getMeals", h.GetMeals)
}

// GetMeals returns two meal suggestions for the query and filters
func (h *MealHandler) GetMeals(c *gin.Context) {
	var req types.MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(types.NewError(types.KindInvalidInput, "Request body must be JSON.", err))
		return
	}
	if req.Query == "" {
		c.Error(types.NewError(types.KindInvalidInput, "No query provided.", nil))
		return
	}

	meals, err := h.mealService.Suggest(c.Request.Context(), req)
	if err != nil {
		// Extraction failures keep the suggestions key so clients can render an empty list
		var appErr *types.Error
		if errors.As(err, &appErr) && appErr.Kind == types.KindParseFailure {
			c.JSON(http.StatusInternalServerError, types.MealsResponse{
				Suggestions: []types.Meal{},
				Error:       appErr.Message,
			})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.MealsResponse{Suggestions: meals})
}
