package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/pageza/thali/backend/config"
	"github.com/pageza/thali/backend/internal/api"
	"github.com/pageza/thali/backend/internal/database"
	"github.com/pageza/thali/backend/internal/middleware"
	"github.com/pageza/thali/backend/internal/router"
	"github.com/pageza/thali/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	redis  *redis.Client
	logger *logrus.Logger
}

// New wires clients, services and handlers from cfg
func New(cfg *config.Config, logger *logrus.Logger) *Server {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	inference := service.NewChatCompletionClient(cfg.InferenceURL, cfg.InferenceModel, cfg.InferenceTimeout, logger.WithField("component", "inference"))
	places := service.NewGooglePlacesClient(cfg.PlacesAPIKey, cfg.PlacesURL, cfg.PlacesTimeout, logger.WithField("component", "places"))
	if cfg.PlacesAPIKey == "" {
		logger.Warn("GOOGLE_MAPS_API_KEY is not set; restaurant lookups will fail")
	}

	mealHandler := api.NewMealHandler(service.NewMealService(inference, logger.WithField("component", "meals")))
	restaurantHandler := api.NewRestaurantHandler(service.NewRestaurantService(places, cfg.SearchLocation, logger.WithField("component", "restaurants")))

	s := &Server{logger: logger}

	// Rate limiting is optional; run without it if Redis is not available
	var limiter *middleware.RateLimiter
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(context.Background(), cfg.RedisURL, logger)
		if err != nil {
			logger.Warnf("Failed to connect to Redis for rate limiting: %v", err)
		} else {
			s.redis = client
			limiter = middleware.NewRateLimiter(client, middleware.RateLimitConfig{
				Window: cfg.RateLimitWindow,
				Limit:  cfg.RateLimit,
			}, logger.WithField("component", "rate_limit"))
		}
	}

	s.router = router.SetupRouter(cfg.AllowedOrigin, logger, mealHandler, restaurantHandler, limiter)
	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until the server is shut down
func (s *Server) Start() error {
	s.logger.Infof("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and releases Redis
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
