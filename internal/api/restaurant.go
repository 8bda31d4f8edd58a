package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/thali/backend/internal/service"
	"github.com/pageza/thali/backend/internal/types"
)

// RestaurantHandler handles restaurant lookup requests
type RestaurantHandler struct {
	restaurantService service.IRestaurantService
}

// NewRestaurantHandler creates a new RestaurantHandler instance
func NewRestaurantHandler(restaurantService service.IRestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

// RegisterRoutes registers the restaurant routes
func (h *RestaurantHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/findRestaurants", h.FindRestaurants)
}

// FindRestaurants returns up to three restaurants serving the meal
func (h *RestaurantHandler) FindRestaurants(c *gin.Context) {
	var req types.RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(types.NewError(types.KindInvalidInput, "Request body must be JSON.", err))
		return
	}

	restaurants, err := h.restaurantService.Find(c.Request.Context(), req.MealName)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.RestaurantsResponse{Restaurants: restaurants})
}
