package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/thali/backend/internal/api"
	"github.com/pageza/thali/backend/internal/middleware"
)

// SetupRouter configures the application routes. limiter may be nil.
func SetupRouter(
	allowedOrigin string,
	logger logrus.FieldLogger,
	mealHandler *api.MealHandler,
	restaurantHandler *api.RestaurantHandler,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(allowedOrigin))

	router.GET("/health", api.HealthCheck)

	apiGroup := router.Group("/api")
	if limiter != nil {
		apiGroup.Use(limiter.Middleware())
	}
	{
		mealHandler.RegisterRoutes(apiGroup)
		restaurantHandler.RegisterRoutes(apiGroup)
	}

	return router
}
